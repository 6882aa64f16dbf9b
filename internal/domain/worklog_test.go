package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaCodes(t *testing.T) {
	cases := []struct {
		name string
		row  WorklogRow
		want []string
	}{
		{"key only", WorklogRow{Key: "K1"}, []string{"K1"}},
		{"keys only", WorklogRow{Keys: []string{"K1", "K2"}}, []string{"K1", "K2"}},
		{"both", WorklogRow{Key: "K0", Keys: []string{"K1"}}, []string{"K0", "K1"}},
		{"empties skipped", WorklogRow{Keys: []string{"", "K1", ""}}, []string{"K1"}},
		{"none", WorklogRow{}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.row.AreaCodes())
		})
	}
}

func TestIsWeekly(t *testing.T) {
	daily := WorklogRow{Date: Daily{Time: time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)}}
	weekly := WorklogRow{Date: WeekLabel{Text: "6\n(02.02 - 06.02)"}}

	assert.False(t, daily.IsWeekly())
	assert.True(t, weekly.IsWeekly())
}

func TestFormatError_ListsMissingColumns(t *testing.T) {
	err := &FormatError{Source: "worklog", Reason: "CSV header missing columns", Missing: []string{"User", "Date"}}
	assert.Equal(t, "worklog: CSV header missing columns: User, Date", err.Error())
}

func TestErrorsAreDistinguishable(t *testing.T) {
	wrapped := fmt.Errorf("reading input: %w", &FormatError{Source: "worklog", Reason: "bad", Err: ErrNoDataRows})

	var formatErr *FormatError
	require.True(t, errors.As(wrapped, &formatErr))
	assert.ErrorIs(t, wrapped, ErrNoDataRows)

	var tmplErr *TemplateStructureError
	assert.False(t, errors.As(wrapped, &tmplErr))

	empty := fmt.Errorf("export: %w", &EmptyResultError{Stage: "aggregate"})
	var emptyErr *EmptyResultError
	require.True(t, errors.As(empty, &emptyErr))
	assert.Equal(t, "aggregate", emptyErr.Stage)
}
