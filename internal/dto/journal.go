package dto

import (
	"strings"
	"time"
)

// MoodCategory is one of the five mood buckets derived from polarity.
type MoodCategory string

const (
	MoodVeryNegative MoodCategory = "Very Negative"
	MoodNegative     MoodCategory = "Negative"
	MoodNeutral      MoodCategory = "Neutral"
	MoodPositive     MoodCategory = "Positive"
	MoodVeryPositive MoodCategory = "Very Positive"
)

// MoodCategories lists the categories from most negative to most positive.
var MoodCategories = []MoodCategory{
	MoodVeryNegative,
	MoodNegative,
	MoodNeutral,
	MoodPositive,
	MoodVeryPositive,
}

// ParseMoodCategory matches a category name case-insensitively.
func ParseMoodCategory(s string) (MoodCategory, bool) {
	for _, c := range MoodCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// JournalEntry is one normalized journal entry before analysis.
type JournalEntry struct {
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// AnalyzedEntry is a JournalEntry with its mood analysis.
type AnalyzedEntry struct {
	JournalEntry
	SentimentScore    float64      `json:"sentiment_score"`
	SubjectivityScore float64      `json:"subjectivity_score"`
	MoodCategory      MoodCategory `json:"mood_category"`
	Keywords          []string     `json:"keywords"`
}

// StoredRecord is an AnalyzedEntry as read back from the store.
type StoredRecord struct {
	ID uint `json:"id"`
	AnalyzedEntry
	CreatedAt time.Time `json:"created_at"`
}

// Entries returns the analysed part of each record, in order.
func Entries(records []StoredRecord) []AnalyzedEntry {
	entries := make([]AnalyzedEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.AnalyzedEntry)
	}
	return entries
}
