package worklog

import (
	"sort"

	"github.com/alexanderramin/timesheet/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A Collator keeps internal buffers and is not safe for concurrent use, so
// every sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.German)
}

func compareWith(c *collate.Collator, a, b domain.WorklogRow) int {
	// 1. Date
	if a.DateSort != b.DateSort {
		if a.DateSort < b.DateSort {
			return -1
		}
		return 1
	}

	// 2. User (German collation)
	if byUser := c.CompareString(a.User, b.User); byUser != 0 {
		return byUser
	}

	// 3. Description (German collation)
	return c.CompareString(a.Description, b.Description)
}

// Compare orders two rows by the canonical rules:
// 1. DateSort ascending
// 2. User, German collation
// 3. Description, German collation
func Compare(a, b domain.WorklogRow) int {
	return compareWith(newCollator(), a, b)
}

// CanonicalSort sorts rows in place by Compare.
func CanonicalSort(rows []domain.WorklogRow) {
	c := newCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		return compareWith(c, rows[i], rows[j]) < 0
	})
}

// Sorted returns a canonically sorted copy of rows.
func Sorted(rows []domain.WorklogRow) []domain.WorklogRow {
	out := make([]domain.WorklogRow, len(rows))
	copy(out, rows)
	CanonicalSort(out)
	return out
}
