package repository

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"mood-journal/internal/config"
	"mood-journal/internal/dto"
	"mood-journal/internal/entity"
	"mood-journal/pkg/database"
	"mood-journal/pkg/utils"

	"gorm.io/gorm"
)

const (
	defaultBatchSize = 100
	hashLookupChunk  = 500
	entryOrder       = "date DESC, id DESC"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type entryTotals struct {
	Total   int64
	Average *float64
}

type moodCount struct {
	MoodCategory *string
	Count        int64
}

type monthlyAverage struct {
	Month   string
	Average *float64
}

// JournalEntryRepository is the append-only store of analysed entries.
// Every method opens the database first if it is not connected yet.
type JournalEntryRepository interface {
	// Insert appends entries in one transaction and returns how many rows
	// were written. Any failure rolls back the whole batch.
	Insert(ctx context.Context, entries []dto.AnalyzedEntry) (int, error)
	FindAll(ctx context.Context) ([]dto.StoredRecord, error)
	// FindByDateRange returns entries with start <= date <= end.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]dto.StoredRecord, error)
	FindByCategory(ctx context.Context, category dto.MoodCategory) ([]dto.StoredRecord, error)
	// Search matches term case-insensitively against title or content.
	Search(ctx context.Context, term string) ([]dto.StoredRecord, error)
	Statistics(ctx context.Context) (*dto.MoodStatistics, error)
	// Clear deletes every entry and returns the number removed.
	Clear(ctx context.Context) (int64, error)
}

// NewJournalEntryRepository creates a new GORM-based journal entry repository.
func NewJournalEntryRepository(db *database.Lazy, cfg config.Store) JournalEntryRepository {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &journalEntryRepository{db: db, deduplicate: cfg.Deduplicate, batchSize: batchSize}
}

type journalEntryRepository struct {
	db          *database.Lazy
	deduplicate bool
	batchSize   int
}

func (r *journalEntryRepository) Insert(ctx context.Context, entries []dto.AnalyzedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	db, err := r.db.Get(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([]entity.JournalEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toEntity(e))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if r.deduplicate {
			filtered, err := r.filterExistingEntries(tx, rows)
			if err != nil {
				return err
			}
			rows = filtered
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, r.batchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal entries: %w", err)
	}
	return len(rows), nil
}

// filterExistingEntries drops rows whose content hash is already stored or
// appears earlier in the same batch.
func (r *journalEntryRepository) filterExistingEntries(tx *gorm.DB, rows []entity.JournalEntry) ([]entity.JournalEntry, error) {
	hashes := make([]string, 0, len(rows))
	for _, row := range rows {
		hashes = append(hashes, row.ContentHash)
	}

	existing := make(map[string]bool)
	for start := 0; start < len(hashes); start += hashLookupChunk {
		end := start + hashLookupChunk
		if end > len(hashes) {
			end = len(hashes)
		}

		var found []string
		err := tx.Model(&entity.JournalEntry{}).
			Where("content_hash IN ?", hashes[start:end]).
			Distinct().
			Pluck("content_hash", &found).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch existing entries: %w", err)
		}
		for _, h := range found {
			existing[h] = true
		}
	}

	filtered := make([]entity.JournalEntry, 0, len(rows))
	for _, row := range rows {
		if existing[row.ContentHash] {
			continue
		}
		existing[row.ContentHash] = true
		filtered = append(filtered, row)
	}
	return filtered, nil
}

func (r *journalEntryRepository) FindAll(ctx context.Context) ([]dto.StoredRecord, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q })
}

func (r *journalEntryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]dto.StoredRecord, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("date >= ? AND date <= ?", utils.FormatDate(start), utils.FormatDate(end))
	})
}

func (r *journalEntryRepository) FindByCategory(ctx context.Context, category dto.MoodCategory) ([]dto.StoredRecord, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("mood_category = ?", string(category))
	})
}

func (r *journalEntryRepository) Search(ctx context.Context, term string) ([]dto.StoredRecord, error) {
	// SQLite's LOWER folds ASCII only, so non-ASCII terms are matched in Go.
	if !isASCII(term) {
		records, err := r.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		matched := make([]dto.StoredRecord, 0, len(records))
		for _, rec := range records {
			if containsFold(rec.Title, term) || containsFold(rec.Content, term) {
				matched = append(matched, rec)
			}
		}
		return matched, nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, pattern, pattern)
	})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func (r *journalEntryRepository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]dto.StoredRecord, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var rows []entity.JournalEntry
	if err := scope(db.Model(&entity.JournalEntry{})).Order(entryOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}

	records := make([]dto.StoredRecord, 0, len(rows))
	for _, row := range rows {
		record, err := toStoredRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *journalEntryRepository) Statistics(ctx context.Context) (*dto.MoodStatistics, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var totals entryTotals
	if err := db.Model(&entity.JournalEntry{}).
		Select("COUNT(*) AS total, AVG(sentiment_score) AS average").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate journal entries: %w", err)
	}

	var moods []moodCount
	if err := db.Model(&entity.JournalEntry{}).
		Select("mood_category, COUNT(*) AS count").
		Group("mood_category").
		Scan(&moods).Error; err != nil {
		return nil, fmt.Errorf("failed to count mood categories: %w", err)
	}

	var months []monthlyAverage
	if err := db.Model(&entity.JournalEntry{}).
		Select("substr(date, 1, 7) AS month, AVG(sentiment_score) AS average").
		Group("substr(date, 1, 7)").
		Order("month").
		Scan(&months).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sentiment: %w", err)
	}

	stats := &dto.MoodStatistics{
		TotalEntries:     int(totals.Total),
		MoodDistribution: make(map[dto.MoodCategory]int, len(moods)),
		MonthlySentiment: make(map[string]float64, len(months)),
	}
	if totals.Average != nil {
		stats.AverageSentiment = *totals.Average
	}
	for _, m := range moods {
		if m.MoodCategory == nil {
			continue
		}
		stats.MoodDistribution[dto.MoodCategory(*m.MoodCategory)] = int(m.Count)
	}
	for _, m := range months {
		if m.Average != nil {
			stats.MonthlySentiment[m.Month] = *m.Average
		}
	}
	return stats, nil
}

func (r *journalEntryRepository) Clear(ctx context.Context) (int64, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return 0, err
	}

	result := db.Exec("DELETE FROM journal_entries")
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear journal entries: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ContentHash identifies an entry by its date, title and content.
func ContentHash(e dto.JournalEntry) string {
	return utils.HashIdentifier(utils.FormatDate(e.Date), e.Title, e.Content)
}

func toEntity(e dto.AnalyzedEntry) entity.JournalEntry {
	keywords := make(entity.KeywordList, len(e.Keywords))
	copy(keywords, e.Keywords)

	return entity.JournalEntry{
		Date:              utils.FormatDate(e.Date),
		Title:             e.Title,
		Content:           e.Content,
		SentimentScore:    e.SentimentScore,
		SubjectivityScore: e.SubjectivityScore,
		MoodCategory:      string(e.MoodCategory),
		Keywords:          keywords,
		ContentHash:       ContentHash(e.JournalEntry),
	}
}

func toStoredRecord(row entity.JournalEntry) (dto.StoredRecord, error) {
	date, err := utils.ParseDate(row.Date)
	if err != nil {
		return dto.StoredRecord{}, fmt.Errorf("failed to parse stored date of entry %d: %w", row.ID, err)
	}

	keywords := []string(row.Keywords)
	if keywords == nil {
		keywords = []string{}
	}

	return dto.StoredRecord{
		ID: row.ID,
		AnalyzedEntry: dto.AnalyzedEntry{
			JournalEntry: dto.JournalEntry{
				Date:    date,
				Title:   row.Title,
				Content: row.Content,
			},
			SentimentScore:    row.SentimentScore,
			SubjectivityScore: row.SubjectivityScore,
			MoodCategory:      dto.MoodCategory(row.MoodCategory),
			Keywords:          keywords,
		},
		CreatedAt: row.CreatedAt,
	}, nil
}
