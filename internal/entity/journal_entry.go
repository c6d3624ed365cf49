package entity

import (
	"time"
)

// JournalEntry is an analysed journal entry as persisted in journal_entries.
// Rows are append-only: created on insert, removed only by a full clear.
type JournalEntry struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	Date              string      `gorm:"type:text;not null" json:"date"`
	Title             string      `gorm:"type:text" json:"title"`
	Content           string      `gorm:"type:text;not null" json:"content"`
	SentimentScore    float64     `json:"sentiment_score"`
	SubjectivityScore float64     `json:"subjectivity_score"`
	MoodCategory      string      `gorm:"type:text" json:"mood_category"`
	Keywords          KeywordList `gorm:"type:text" json:"keywords"`
	ContentHash       string      `gorm:"type:text" json:"content_hash"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the JournalEntry model.
func (JournalEntry) TableName() string {
	return "journal_entries"
}
