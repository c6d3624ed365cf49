package dto

import (
	"time"
)

// MoodStatistics is the aggregate view over a set of entries.
type MoodStatistics struct {
	TotalEntries     int                  `json:"total_entries"`
	AverageSentiment float64              `json:"average_sentiment"`
	MoodDistribution map[MoodCategory]int `json:"mood_distribution"`
	MonthlySentiment map[string]float64   `json:"monthly_sentiment"`
}

// Summary is the headline metrics of a set of entries.
type Summary struct {
	Count         int     `json:"count"`
	MeanSentiment float64 `json:"mean_sentiment"`
	ModeCategory  string  `json:"mode_category"`
	DateSpanDays  int     `json:"date_span_days"`
}

// KeywordCount is a keyword and the number of times it occurs.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// WeekdaySentiment is the mean sentiment of entries written on one weekday.
type WeekdaySentiment struct {
	Weekday       time.Weekday `json:"-"`
	Name          string       `json:"weekday"`
	MeanSentiment float64      `json:"mean_sentiment"`
	Count         int          `json:"count"`
}
