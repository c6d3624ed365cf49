package statistics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mood-journal/internal/dto"
	"mood-journal/pkg/utils"
)

// ErrInvalidFilter is returned for an unknown range, mood or an inverted date range.
var ErrInvalidFilter = errors.New("invalid filter")

// QuickRange is a named date range relative to the latest entry.
type QuickRange string

const (
	RangeLast90Days QuickRange = "last_90_days"
	RangeThisYear   QuickRange = "this_year"
	RangeAllTime    QuickRange = "all_time"
)

// ParseQuickRange validates a quick range name. An empty name is all_time.
func ParseQuickRange(s string) (QuickRange, error) {
	switch QuickRange(strings.ToLower(strings.TrimSpace(s))) {
	case RangeLast90Days:
		return RangeLast90Days, nil
	case RangeThisYear:
		return RangeThisYear, nil
	case RangeAllTime, "":
		return RangeAllTime, nil
	}
	return "", fmt.Errorf("%w: unknown range %q", ErrInvalidFilter, s)
}

// Bounds returns the inclusive [start, end] of the range given the latest
// entry date. all_time has no bounds.
func (q QuickRange) Bounds(latest time.Time) (start, end *time.Time) {
	latest = utils.TruncateDay(latest)
	switch q {
	case RangeLast90Days:
		s := latest.AddDate(0, 0, -90)
		return &s, &latest
	case RangeThisYear:
		s := time.Date(latest.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return &s, &latest
	}
	return nil, nil
}

// Filter selects entries by inclusive date bounds, mood category and a
// case-insensitive search term. Zero fields match everything.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Category dto.MoodCategory
	Search   string
}

// Validate rejects a start date after the end date.
func (f Filter) Validate() error {
	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidFilter, utils.FormatDate(*f.Start), utils.FormatDate(*f.End))
	}
	return nil
}

// WithRange narrows the filter to a quick range computed from records. Explicit
// bounds already on the filter are kept.
func (f Filter) WithRange(q QuickRange, records []dto.StoredRecord) Filter {
	if len(records) == 0 {
		return f
	}
	latest := records[0].Date
	for _, r := range records[1:] {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}

	start, end := q.Bounds(latest)
	if f.Start == nil {
		f.Start = start
	}
	if f.End == nil {
		f.End = end
	}
	return f
}

// Matches reports whether one entry passes the filter.
func (f Filter) Matches(e dto.AnalyzedEntry) bool {
	date := utils.TruncateDay(e.Date)
	if f.Start != nil && date.Before(utils.TruncateDay(*f.Start)) {
		return false
	}
	if f.End != nil && date.After(utils.TruncateDay(*f.End)) {
		return false
	}
	if f.Category != "" && e.MoodCategory != f.Category {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), term) && !strings.Contains(strings.ToLower(e.Content), term) {
			return false
		}
	}
	return true
}

// Apply returns the records that pass the filter, in their original order.
func (f Filter) Apply(records []dto.StoredRecord) []dto.StoredRecord {
	out := make([]dto.StoredRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r.AnalyzedEntry) {
			out = append(out, r)
		}
	}
	return out
}
