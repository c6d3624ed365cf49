package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mood-journal/internal/dto"
	"mood-journal/pkg/config"
	"mood-journal/pkg/database"
	"mood-journal/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestLazy(t *testing.T) *database.Lazy {
	t.Helper()
	lazy := database.NewLazy(config.Database{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "journal_mood.db"),
		AutoMigrate: true,
	}, logger.NewNop())
	t.Cleanup(func() { _ = lazy.Close() })
	return lazy
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func analyzed(date, title, content string, score float64, mood dto.MoodCategory, keywords ...string) dto.AnalyzedEntry {
	if keywords == nil {
		keywords = []string{}
	}
	return dto.AnalyzedEntry{
		JournalEntry:      dto.JournalEntry{Date: day(date), Title: title, Content: content},
		SentimentScore:    score,
		SubjectivityScore: 0.4,
		MoodCategory:      mood,
		Keywords:          keywords,
	}
}

func dates(records []dto.StoredRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Date.Format("2006-01-02"))
	}
	return out
}

func mustInsert(t *testing.T, repo JournalEntryRepository, entries ...dto.AnalyzedEntry) {
	t.Helper()
	n, err := repo.Insert(context.Background(), entries)
	require.NoError(t, err)
	require.Equal(t, len(entries), n)
}
