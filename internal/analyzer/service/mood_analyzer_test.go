package service

import (
	"testing"
	"time"

	"mood-journal/internal/config"
	"mood-journal/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		polarity float64
		want     dto.MoodCategory
	}{
		{-1, dto.MoodVeryNegative},
		{-0.5, dto.MoodVeryNegative},
		{-0.49999, dto.MoodNegative},
		{-0.1, dto.MoodNegative},
		{-0.09999, dto.MoodNeutral},
		{0, dto.MoodNeutral},
		{0.1, dto.MoodNeutral},
		{0.10001, dto.MoodPositive},
		{0.5, dto.MoodPositive},
		{0.50001, dto.MoodVeryPositive},
		{1, dto.MoodVeryPositive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.polarity), "polarity %v", tt.polarity)
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		minLength int
		maxWords  int
		want      []string
	}{
		{
			name:      "punctuation and stop words removed in order",
			text:      "Today I'm grateful for COFFEE, sunshine and my family! Family time.",
			minLength: 4,
			maxWords:  50,
			want:      []string{"today", "grateful", "coffee", "sunshine", "family", "family", "time"},
		},
		{
			name:      "digits stripped and short residues dropped",
			text:      "ran 5km2 then 10k, marathon2025",
			minLength: 4,
			maxWords:  50,
			want:      []string{"marathon"},
		},
		{
			name:      "truncates to the first max words",
			text:      "alpha bravo charlie delta echo",
			minLength: 4,
			maxWords:  2,
			want:      []string{"alpha", "bravo"},
		},
		{
			name:      "contractions are stop words",
			text:      "I've been thinking, I'm tired; didn't sleep",
			minLength: 2,
			maxWords:  50,
			want:      []string{"thinking", "tired", "sleep"},
		},
		{
			name:      "empty text",
			text:      "   ",
			minLength: 4,
			maxWords:  50,
			want:      []string{},
		},
		{
			name:      "zero max words",
			text:      "something",
			minLength: 4,
			maxWords:  0,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text, tt.minLength, tt.maxWords)
			assert.Equal(t, tt.want, got)
			for _, k := range got {
				assert.GreaterOrEqual(t, len(k), tt.minLength)
				assert.False(t, IsStopWord(k), k)
			}
			assert.LessOrEqual(t, len(got), tt.maxWords)
		})
	}
}

func TestVaderScorer(t *testing.T) {
	scorer := NewVaderScorer()

	polarity, subjectivity := scorer.Score("Today was wonderful and I feel happy.")
	assert.Greater(t, polarity, 0.1)
	assert.Greater(t, subjectivity, 0.0)
	assert.LessOrEqual(t, subjectivity, 1.0)

	again, _ := scorer.Score("Today was wonderful and I feel happy.")
	assert.Equal(t, polarity, again)

	negative, _ := scorer.Score("I feel terrible, sad and hopeless.")
	assert.Less(t, negative, -0.1)

	p, s := scorer.Score("  \n ")
	assert.Zero(t, p)
	assert.Zero(t, s)
}

type countingScorer struct {
	calls    int
	polarity float64
}

func (c *countingScorer) Score(string) (float64, float64) {
	c.calls++
	return c.polarity, 0.5
}

func TestCachedScorer(t *testing.T) {
	next := &countingScorer{polarity: 0.3}
	scorer := NewCachedScorer(next, time.Minute, time.Minute)

	p1, s1 := scorer.Score("same text")
	p2, s2 := scorer.Score("same text")
	_, _ = scorer.Score("other text")

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, 2, scorer.Len())
}

func TestMoodAnalyzer_Analyze(t *testing.T) {
	analyzer := NewMoodAnalyzer(config.Analyzer{MinKeywordLength: 4, MaxKeywords: 50}, &countingScorer{polarity: -0.3})

	entry := dto.JournalEntry{
		Date:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Title:   "Rough day",
		Content: "Stressful meeting, then traffic.",
	}
	got := analyzer.Analyze(entry)

	assert.Equal(t, entry, got.JournalEntry)
	assert.Equal(t, -0.3, got.SentimentScore)
	assert.Equal(t, 0.5, got.SubjectivityScore)
	assert.Equal(t, dto.MoodNegative, got.MoodCategory)
	assert.Equal(t, []string{"stressful", "meeting", "traffic"}, got.Keywords)
}

func TestMoodAnalyzer_AnalyzeAll_EndToEndScore(t *testing.T) {
	analyzer := NewMoodAnalyzer(config.Analyzer{MinKeywordLength: 4, MaxKeywords: 50}, NewVaderScorer())

	got := analyzer.AnalyzeAll([]dto.JournalEntry{
		{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Title: "Morning thoughts", Content: "Today was wonderful and I feel happy."},
	})
	require.Len(t, got, 1)

	assert.Greater(t, got[0].SentimentScore, 0.1)
	assert.Contains(t, []dto.MoodCategory{dto.MoodPositive, dto.MoodVeryPositive}, got[0].MoodCategory)
	assert.Equal(t, []string{"today", "wonderful", "feel", "happy"}, got[0].Keywords)
}
