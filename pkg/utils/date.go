package utils

import (
	"fmt"
	"strings"
	"time"

	"mood-journal/pkg/common"

	"github.com/araddon/dateparse"
)

// TimeNow returns the current time in the local time zone. Swapped in tests.
var TimeNow = time.Now

// ParseDate parses an ISO date first and falls back to a tolerant parser for
// the other layouts people put in CSV files ("01/10/2025", "Jan 10 2025").
// The result is truncated to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(common.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return TruncateDay(t), nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(common.DateLayout)
}

// TruncateDay drops the clock part and normalises to UTC.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(TruncateDay(b).Sub(TruncateDay(a)).Hours() / 24)
}
