package worklog

import (
	"regexp"
	"strings"
)

var (
	lineBreakPattern  = regexp.MustCompile(`\r\n|\r|\n`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Zs}]+`)
	separatorPattern  = regexp.MustCompile(`(?:\r\n|\r|\n|[;,])+`)
	bulletPattern     = regexp.MustCompile(`^\s*-\s*`)
)

// NormalizeField turns line breaks into spaces, collapses whitespace runs and
// trims the result.
func NormalizeField(s string) string {
	s = lineBreakPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func normalizeFragment(s string) string {
	return bulletPattern.ReplaceAllString(NormalizeField(s), "")
}

// SplitParts splits free task text into atomic fragments on line breaks,
// semicolons and commas. Leading "-" bullets are removed and empty fragments
// dropped.
func SplitParts(s string) []string {
	raw := separatorPattern.Split(s, -1)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = normalizeFragment(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// JoinParts joins description fragments the way they are stored on a row.
func JoinParts(parts []string) string {
	return strings.Join(parts, ", ")
}
