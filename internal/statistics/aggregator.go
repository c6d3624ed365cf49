package statistics

import (
	"sort"
	"time"

	"mood-journal/internal/dto"
	"mood-journal/pkg/common"
	"mood-journal/pkg/utils"
)

// Summarize returns count, mean sentiment, most common category and the span
// in days between the first and last entry. An empty input yields
// (0, 0.0, "N/A", 0).
func Summarize(entries []dto.AnalyzedEntry) dto.Summary {
	if len(entries) == 0 {
		return dto.Summary{ModeCategory: common.NotAvailable}
	}

	var (
		sum        float64
		counts     = make(map[dto.MoodCategory]int)
		order      []dto.MoodCategory
		minD, maxD = entries[0].Date, entries[0].Date
	)
	for _, e := range entries {
		sum += e.SentimentScore
		if _, seen := counts[e.MoodCategory]; !seen {
			order = append(order, e.MoodCategory)
		}
		counts[e.MoodCategory]++
		if e.Date.Before(minD) {
			minD = e.Date
		}
		if e.Date.After(maxD) {
			maxD = e.Date
		}
	}

	// first category to reach the highest count wins ties
	mode := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[mode] {
			mode = c
		}
	}

	return dto.Summary{
		Count:         len(entries),
		MeanSentiment: sum / float64(len(entries)),
		ModeCategory:  string(mode),
		DateSpanDays:  utils.DaysBetween(minD, maxD),
	}
}

// MoodStatistics computes the same aggregates as the store, in memory.
func MoodStatistics(entries []dto.AnalyzedEntry) dto.MoodStatistics {
	stats := dto.MoodStatistics{
		TotalEntries:     len(entries),
		MoodDistribution: make(map[dto.MoodCategory]int),
		MonthlySentiment: make(map[string]float64),
	}
	if len(entries) == 0 {
		return stats
	}

	var sum float64
	monthSums := make(map[string]float64)
	monthCounts := make(map[string]int)
	for _, e := range entries {
		sum += e.SentimentScore
		stats.MoodDistribution[e.MoodCategory]++
		month := e.Date.Format(common.MonthLayout)
		monthSums[month] += e.SentimentScore
		monthCounts[month]++
	}

	stats.AverageSentiment = sum / float64(len(entries))
	for month, total := range monthSums {
		stats.MonthlySentiment[month] = total / float64(monthCounts[month])
	}
	return stats
}

// TopKeywords counts keywords across entries and returns the n most frequent.
// Equal counts keep the order in which the keywords first appeared.
func TopKeywords(entries []dto.AnalyzedEntry, n int) []dto.KeywordCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		for _, k := range e.Keywords {
			if _, seen := counts[k]; !seen {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	top := make([]dto.KeywordCount, 0, len(order))
	for _, k := range order {
		top = append(top, dto.KeywordCount{Keyword: k, Count: counts[k]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})

	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// WeekdaySentiment returns the mean sentiment per weekday, Monday first,
// for weekdays that have entries.
func WeekdaySentiment(entries []dto.AnalyzedEntry) []dto.WeekdaySentiment {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, e := range entries {
		wd := e.Date.Weekday()
		sums[wd] += e.SentimentScore
		counts[wd]++
	}

	result := make([]dto.WeekdaySentiment, 0, len(counts))
	for _, wd := range weekdayOrder {
		if counts[wd] == 0 {
			continue
		}
		result = append(result, dto.WeekdaySentiment{
			Weekday:       wd,
			Name:          wd.String(),
			MeanSentiment: sums[wd] / float64(counts[wd]),
			Count:         counts[wd],
		})
	}
	return result
}
