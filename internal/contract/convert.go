package contract

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/areas"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/shopspring/decimal"
)

// Format is an output document kind.
type Format string

const (
	FormatDocx Format = "docx"
	FormatXlsx Format = "xlsx"
)

type ConvertRequest struct {
	WorklogName   string // source file name, used to derive output names
	Worklog       string // raw worklog CSV
	Areas         string // raw work-area CSV; empty means no area index
	Template      []byte // docx template; required when Formats has FormatDocx
	Weekly        bool
	IncludeLegend bool
	Formats       []Format // empty renders nothing (preview)
	Now           *time.Time
}

func NewConvertRequest(worklogName, worklog string) ConvertRequest {
	return ConvertRequest{
		WorklogName: worklogName,
		Worklog:     worklog,
		Formats:     []Format{FormatXlsx},
	}
}

// Wants reports whether f is among the requested formats.
func (r ConvertRequest) Wants(f Format) bool {
	for _, want := range r.Formats {
		if want == f {
			return true
		}
	}
	return false
}

type Output struct {
	Format   Format
	FileName string
	Data     []byte
}

type ConvertResponse struct {
	RunID       string
	GeneratedAt time.Time
	SourceRows  int // rows accepted by the normalizer
	Rows        []domain.WorklogRow
	Areas       *areas.Index
	Unmapped    []areas.Unmapped
	TotalHours  decimal.Decimal
	Outputs     []Output
	Warnings    []string
}

type ConvertErrorCode string

const (
	ErrMissingTemplate ConvertErrorCode = "MISSING_TEMPLATE"
	ErrUnknownFormat   ConvertErrorCode = "UNKNOWN_FORMAT"
)

type ConvertError struct {
	Code    ConvertErrorCode
	Message string
}

func (e *ConvertError) Error() string {
	return string(e.Code) + ": " + e.Message
}
