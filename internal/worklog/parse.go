// Package worklog turns a raw worklog CSV export into canonically ordered,
// validated rows.
package worklog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/tabular"
)

// Required worklog header columns.
const (
	ColUser    = "User"
	ColWorklog = "Worklog"
	ColKey     = "Key"
	ColLogged  = "Logged"
	ColDate    = "Date"
)

var requiredColumns = []string{ColUser, ColWorklog, ColKey, ColLogged, ColDate}

// Rejection reasons written to the diagnostic log.
const (
	ReasonMissingUser          = "missing_user"
	ReasonMissingWorklog       = "missing_worklog/summary_row"
	ReasonInvalidLoggedAndDate = "invalid_logged_and_date"
	ReasonInvalidLogged        = "invalid_logged"
	ReasonInvalidDate          = "invalid_date"
)

// Parser normalizes worklog CSV text.
type Parser struct {
	loc *time.Location
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation anchors parsed dates to noon in loc instead of time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// NewParser creates a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{loc: time.Local}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse normalizes text with a default Parser.
func Parse(text string, warn domain.Logger) ([]domain.WorklogRow, error) {
	return NewParser().Parse(text, warn)
}

// Parse reads the worklog CSV, drops unusable records (one warn line each) and
// returns the accepted rows in canonical order. Structural problems with the
// source are returned as *domain.FormatError.
func (p *Parser) Parse(text string, warn domain.Logger) ([]domain.WorklogRow, error) {
	if warn == nil {
		warn = domain.NopLogger
	}

	records, err := tabular.ReadRecords(text)
	if err != nil {
		return nil, &domain.FormatError{Source: "worklog", Reason: "CSV parse error", Err: err}
	}
	if len(records) < 2 {
		return nil, &domain.FormatError{Source: "worklog", Reason: "CSV has no data rows", Err: domain.ErrNoDataRows}
	}

	cols, missing := tabular.ResolveColumns(records[0], requiredColumns...)
	if len(missing) > 0 {
		return nil, &domain.FormatError{Source: "worklog", Reason: "CSV header missing columns", Missing: missing}
	}

	rows := make([]domain.WorklogRow, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]

		user := NormalizeField(cols.Field(record, ColUser))
		description := JoinParts(SplitParts(cols.Field(record, ColWorklog)))
		key := NormalizeField(cols.Field(record, ColKey))
		logged := NormalizeField(cols.Field(record, ColLogged))
		dateField := NormalizeField(cols.Field(record, ColDate))

		d := discarded{User: user, Description: description, Key: key, Logged: logged}

		if user == "" {
			warn(d.line(i+1, ReasonMissingUser))
			continue
		}
		if description == "" {
			warn(d.line(i+1, ReasonMissingWorklog))
			continue
		}

		hours, hoursOK := ParseHours(logged)
		date, dateOK := ParseDate(dateField, p.loc)
		if !hoursOK || !dateOK {
			d.DateField = &dateField
			warn(d.line(i+1, rejectionReason(hoursOK, dateOK)))
			continue
		}

		rows = append(rows, domain.WorklogRow{
			Date:        domain.Daily{Time: date},
			DateKey:     date.Format("2006-01-02"),
			DateSort:    date.UnixMilli(),
			User:        user,
			Hours:       hours,
			Description: description,
			Key:         key,
		})
	}

	CanonicalSort(rows)
	return rows, nil
}

func rejectionReason(hoursOK, dateOK bool) string {
	switch {
	case !hoursOK && !dateOK:
		return ReasonInvalidLoggedAndDate
	case !hoursOK:
		return ReasonInvalidLogged
	default:
		return ReasonInvalidDate
	}
}

// discarded is the diagnostic payload attached to a rejected record.
type discarded struct {
	User        string  `json:"user"`
	Description string  `json:"description"`
	Key         string  `json:"key"`
	Logged      string  `json:"logged"`
	DateField   *string `json:"dateField,omitempty"`
}

func (d discarded) line(position int, reason string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(d)
	return fmt.Sprintf("Discarded CSV record %d: %s | %s", position, reason, strings.TrimSpace(buf.String()))
}
