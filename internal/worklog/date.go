package worklog

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Strict layouts tried in order before the flexible fallback.
var dateLayouts = []string{
	"02/01/06",   // DD/MM/YY
	"02/01/2006", // DD/MM/YYYY
	"2006-01-02", // YYYY-MM-DD
}

var atTimePattern = regexp.MustCompile(`(?i)\s+at\s+`)

// ParseDate parses a worklog date field into the calendar day it names,
// anchored to 12:00 in loc so DST and zone offsets cannot shift the day.
// Range values ("01/02/26 to 03/02/26") are rejected.
func ParseDate(field string, loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(field)
	if raw == "" {
		return time.Time{}, false
	}
	if strings.Contains(strings.ToLower(raw), " to ") {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	datePart := strings.TrimSpace(atTimePattern.Split(raw, 2)[0])
	if datePart == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, datePart, loc); err == nil {
			return atNoon(t, loc), true
		}
	}

	t, err := dateparse.ParseIn(datePart, loc)
	if err != nil {
		return time.Time{}, false
	}
	return atNoon(t, loc), true
}

func atNoon(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}
