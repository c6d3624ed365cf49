package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mood-journal/internal/dto"
	"mood-journal/pkg/common"
	"mood-journal/pkg/utils"
)

var (
	entryHeader    = []string{"date", "title", "content"}
	analyzedHeader = []string{"date", "title", "content", "sentiment_score", "subjectivity_score", "mood_category", "keywords"}
)

// CSVReadResult holds the rows of an interchange file that parsed, and how
// many did not.
type CSVReadResult struct {
	Entries     []dto.JournalEntry
	RowsRead    int
	InvalidRows int
}

// CSVRepository reads and writes the CSV interchange format.
type CSVRepository interface {
	WriteEntries(path string, entries []dto.JournalEntry) error
	WriteAnalyzed(path string, entries []dto.AnalyzedEntry) error
	ReadEntries(path string) (*CSVReadResult, error)
}

// NewCSVRepository creates a new file-based CSV repository.
func NewCSVRepository() CSVRepository {
	return &csvRepository{}
}

type csvRepository struct{}

// WriteEntries writes date,title,content rows, creating parent directories.
func (r *csvRepository) WriteEntries(path string, entries []dto.JournalEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{utils.FormatDate(e.Date), e.Title, e.Content})
	}
	return writeCSV(path, entryHeader, rows)
}

// WriteAnalyzed writes the enriched form with the analysis columns appended.
func (r *csvRepository) WriteAnalyzed(path string, entries []dto.AnalyzedEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			utils.FormatDate(e.Date),
			e.Title,
			e.Content,
			strconv.FormatFloat(e.SentimentScore, 'f', -1, 64),
			strconv.FormatFloat(e.SubjectivityScore, 'f', -1, 64),
			string(e.MoodCategory),
			strings.Join(e.Keywords, ","),
		})
	}
	return writeCSV(path, analyzedHeader, rows)
}

// ReadEntries reads an interchange file by header name. The date and content
// columns are required; rows whose date does not parse are counted and
// skipped.
func (r *csvRepository) ReadEntries(path string) (*CSVReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: csv file %s", common.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", common.ErrNoEntries, path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	dateCol, okDate := columns["date"]
	contentCol, okContent := columns["content"]
	if !okDate || !okContent {
		return nil, fmt.Errorf("%s must have date and content columns", path)
	}
	titleCol, okTitle := columns["title"]

	result := &CSVReadResult{Entries: []dto.JournalEntry{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		result.RowsRead++

		if dateCol >= len(record) || contentCol >= len(record) {
			result.InvalidRows++
			continue
		}
		date, err := utils.ParseDate(record[dateCol])
		if err != nil {
			result.InvalidRows++
			continue
		}

		entry := dto.JournalEntry{Date: date, Content: record[contentCol]}
		if okTitle && titleCol < len(record) {
			entry.Title = record[titleCol]
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
