package worklog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hourPattern   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*h`)
	minutePattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*m`)

	sixty = decimal.NewFromInt(60)
)

// ParseHours converts a logged-time field such as "1h 30m", "45m", "2h" or
// "1,5" into hours rounded to two decimals. It reports false when the field
// yields no positive amount. Rounding is exact decimal half-up, so "1.005"
// gives 1.01.
func ParseHours(logged string) (decimal.Decimal, bool) {
	text := strings.ToLower(strings.TrimSpace(logged))
	if text == "" {
		return decimal.Zero, false
	}

	total := matchAmount(hourPattern, text).Add(matchAmount(minutePattern, text).Div(sixty))
	if rounded := total.Round(2); rounded.IsPositive() {
		return rounded, true
	}

	numeric, err := decimal.NewFromString(strings.Replace(text, ",", ".", 1))
	if err != nil {
		return decimal.Zero, false
	}
	if rounded := numeric.Round(2); rounded.IsPositive() {
		return rounded, true
	}
	return decimal.Zero, false
}

func matchAmount(pattern *regexp.Regexp, text string) decimal.Decimal {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	return v
}
