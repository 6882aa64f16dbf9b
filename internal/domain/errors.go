package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDataRows indicates a delimited source holds a header but no records.
var ErrNoDataRows = errors.New("no data rows")

// FormatError reports a structural failure of a delimited input source.
type FormatError struct {
	Source  string   // "worklog" or "work areas"
	Reason  string   // human-readable cause
	Missing []string // required header columns that were not found
	Err     error
}

func (e *FormatError) Error() string {
	msg := e.Source + ": " + e.Reason
	if len(e.Missing) > 0 {
		msg += ": " + strings.Join(e.Missing, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// TemplateStructureError reports a word-processing template that lacks the
// document body entry or the placeholder paragraph.
type TemplateStructureError struct {
	Reason string
	Err    error
}

func (e *TemplateStructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docx template: %s: %v", e.Reason, e.Err)
	}
	return "docx template: " + e.Reason
}

func (e *TemplateStructureError) Unwrap() error { return e.Err }

// EmptyResultError reports that no usable rows remain after a pipeline stage.
type EmptyResultError struct {
	Stage string
}

func (e *EmptyResultError) Error() string {
	switch e.Stage {
	case "aggregate":
		return "no usable worklog rows left after weekly aggregation"
	default:
		return "no usable worklog rows found in CSV (after filtering summary rows)"
	}
}
