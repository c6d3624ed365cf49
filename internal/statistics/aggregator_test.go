package statistics

import (
	"testing"
	"time"

	"mood-journal/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(date string, score float64, mood dto.MoodCategory, keywords ...string) dto.AnalyzedEntry {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return dto.AnalyzedEntry{
		JournalEntry:   dto.JournalEntry{Date: d, Title: "t " + date, Content: "c " + date},
		SentimentScore: score,
		MoodCategory:   mood,
		Keywords:       keywords,
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, dto.Summary{Count: 0, MeanSentiment: 0.0, ModeCategory: "N/A", DateSpanDays: 0}, Summarize(nil))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		entries []dto.AnalyzedEntry
		want    dto.Summary
	}{
		{
			name:    "single entry",
			entries: []dto.AnalyzedEntry{entry("2025-01-10", 0.4, dto.MoodPositive)},
			want:    dto.Summary{Count: 1, MeanSentiment: 0.4, ModeCategory: "Positive", DateSpanDays: 0},
		},
		{
			name: "mode tie goes to first encountered",
			entries: []dto.AnalyzedEntry{
				entry("2025-01-20", -0.2, dto.MoodNegative),
				entry("2025-01-10", 0.2, dto.MoodPositive),
				entry("2025-01-15", 0.3, dto.MoodPositive),
				entry("2025-01-12", -0.3, dto.MoodNegative),
			},
			want: dto.Summary{Count: 4, MeanSentiment: 0, ModeCategory: "Negative", DateSpanDays: 10},
		},
		{
			name: "clear mode",
			entries: []dto.AnalyzedEntry{
				entry("2025-01-01", 0.0, dto.MoodNeutral),
				entry("2025-03-01", 0.6, dto.MoodVeryPositive),
				entry("2025-02-01", 0.9, dto.MoodVeryPositive),
			},
			want: dto.Summary{Count: 3, MeanSentiment: 0.5, ModeCategory: "Very Positive", DateSpanDays: 59},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.entries)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.MeanSentiment, got.MeanSentiment, 1e-9)
			assert.Equal(t, tt.want.ModeCategory, got.ModeCategory)
			assert.Equal(t, tt.want.DateSpanDays, got.DateSpanDays)
		})
	}
}

func TestMoodStatistics(t *testing.T) {
	empty := MoodStatistics(nil)
	assert.Equal(t, 0, empty.TotalEntries)
	assert.Equal(t, 0.0, empty.AverageSentiment)
	assert.Empty(t, empty.MonthlySentiment)

	stats := MoodStatistics([]dto.AnalyzedEntry{
		entry("2025-01-05", 0.2, dto.MoodPositive),
		entry("2025-01-25", 0.4, dto.MoodPositive),
		entry("2025-03-02", -0.6, dto.MoodVeryNegative),
	})
	assert.Equal(t, 3, stats.TotalEntries)
	assert.InDelta(t, 0.0, stats.AverageSentiment, 1e-9)
	assert.Equal(t, map[dto.MoodCategory]int{dto.MoodPositive: 2, dto.MoodVeryNegative: 1}, stats.MoodDistribution)
	require.Len(t, stats.MonthlySentiment, 2)
	assert.InDelta(t, 0.3, stats.MonthlySentiment["2025-01"], 1e-9)
	assert.InDelta(t, -0.6, stats.MonthlySentiment["2025-03"], 1e-9)
}

func TestTopKeywords(t *testing.T) {
	entries := []dto.AnalyzedEntry{
		entry("2025-01-01", 0, dto.MoodNeutral, "coffee", "walk", "family"),
		entry("2025-01-02", 0, dto.MoodNeutral, "family", "work", "walk"),
		entry("2025-01-03", 0, dto.MoodNeutral, "family", "sleep"),
	}

	assert.Equal(t, []dto.KeywordCount{
		{Keyword: "family", Count: 3},
		{Keyword: "walk", Count: 2},
		{Keyword: "coffee", Count: 1},
		{Keyword: "work", Count: 1},
		{Keyword: "sleep", Count: 1},
	}, TopKeywords(entries, 20))

	assert.Equal(t, []dto.KeywordCount{{Keyword: "family", Count: 3}, {Keyword: "walk", Count: 2}}, TopKeywords(entries, 2))
	assert.Empty(t, TopKeywords(nil, 20))
}

func TestWeekdaySentiment(t *testing.T) {
	// 2025-01-06 is a Monday, 2025-01-10 a Friday, 2025-01-12 a Sunday
	got := WeekdaySentiment([]dto.AnalyzedEntry{
		entry("2025-01-12", -0.4, dto.MoodNegative),
		entry("2025-01-10", 0.2, dto.MoodPositive),
		entry("2025-01-06", 0.1, dto.MoodNeutral),
		entry("2025-01-17", 0.6, dto.MoodVeryPositive),
	})

	require.Len(t, got, 3)
	assert.Equal(t, "Monday", got[0].Name)
	assert.Equal(t, "Friday", got[1].Name)
	assert.InDelta(t, 0.4, got[1].MeanSentiment, 1e-9)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "Sunday", got[2].Name)
}
