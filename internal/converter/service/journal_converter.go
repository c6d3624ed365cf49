package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mood-journal/internal/config"
	"mood-journal/internal/dto"
	"mood-journal/internal/repository"
	"mood-journal/pkg/common"
	"mood-journal/pkg/logger"
	"mood-journal/pkg/utils"
)

// JournalConverter turns a directory of journal documents into entries.
type JournalConverter interface {
	// Collect extracts, validates and sorts the entries of dir without
	// writing anything.
	Collect(ctx context.Context, dir string) ([]dto.JournalEntry, *dto.ConversionSummary, error)
	// Convert collects dir and writes the entries as CSV to output.
	Convert(ctx context.Context, dir, output string) (*dto.ConversionSummary, error)
	// Validate reports files whose filename date is missing or implausible.
	Validate(ctx context.Context, dir string) (*dto.ValidationReport, error)
}

// NewJournalConverter creates a new JournalConverter.
func NewJournalConverter(
	cfg config.Converter,
	extractor EntryExtractor,
	csvRepo repository.CSVRepository,
	log *logger.Logger,
) JournalConverter {
	return &journalConverter{
		cfg:       cfg,
		extractor: extractor,
		validator: NewDateValidator(cfg),
		csvRepo:   csvRepo,
		logger:    log,
	}
}

type journalConverter struct {
	cfg       config.Converter
	extractor EntryExtractor
	validator *DateValidator
	csvRepo   repository.CSVRepository
	logger    *logger.Logger
}

func (c *journalConverter) Collect(ctx context.Context, dir string) ([]dto.JournalEntry, *dto.ConversionSummary, error) {
	files, err := c.listDocuments(dir)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("Found journal documents", logger.StringField("dir", dir), logger.IntField("count", len(files)))

	summary := &dto.ConversionSummary{}
	extracted := make([]ExtractedEntry, 0, len(files))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}

		entry, err := c.extractFile(dir, name)
		if err != nil {
			c.logger.Warn("Failed to process document", logger.StringField("file", name), logger.ErrorField(err))
			summary.Errors++
			summary.ErrorFiles = append(summary.ErrorFiles, dto.FileIssue{File: name, Message: err.Error()})
			continue
		}
		if !entry.HasDate() {
			c.logger.Warn("Skipping document: could not determine a valid date", logger.StringField("file", name))
			summary.SkippedNoDate++
			summary.SkippedFiles = append(summary.SkippedFiles, dto.FileIssue{File: name})
			continue
		}

		extracted = append(extracted, entry)
		summary.Processed++
	}

	entries := make([]dto.JournalEntry, 0, len(extracted))
	for _, e := range extracted {
		date, err := utils.ParseDate(e.Date)
		if err != nil {
			summary.DroppedInvalidDate++
			continue
		}
		entries = append(entries, dto.JournalEntry{Date: date, Title: e.Title, Content: e.Content})
	}
	if summary.DroppedInvalidDate > 0 {
		c.logger.Warn("Dropped entries with invalid dates", logger.IntField("count", summary.DroppedInvalidDate))
	}

	if len(entries) == 0 {
		return nil, summary, common.ErrNoEntries
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, summary, nil
}

func (c *journalConverter) Convert(ctx context.Context, dir, output string) (*dto.ConversionSummary, error) {
	entries, summary, err := c.Collect(ctx, dir)
	if err != nil {
		return summary, err
	}

	if err := c.csvRepo.WriteEntries(output, entries); err != nil {
		return summary, fmt.Errorf("failed to write %s: %w", output, err)
	}
	summary.Written = len(entries)
	summary.Output = output

	c.logger.Info("Converted journal entries",
		logger.IntField("processed", summary.Processed),
		logger.IntField("skipped", summary.SkippedNoDate),
		logger.IntField("errors", summary.Errors),
		logger.StringField("output", output),
	)
	return summary, nil
}

func (c *journalConverter) Validate(ctx context.Context, dir string) (*dto.ValidationReport, error) {
	files, err := c.listDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no journal documents in %s", common.ErrNoEntries, dir)
	}

	report := &dto.ValidationReport{Total: len(files), Issues: []dto.ValidationIssue{}}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		parsed := ParseFilename(name)
		if !parsed.HasDate() {
			report.Issues = append(report.Issues, dto.ValidationIssue{
				File:     name,
				Issue:    "no date found in filename",
				Severity: dto.SeverityWarning,
			})
			continue
		}
		if err := c.validator.Validate(parsed.Date); err != nil {
			report.Issues = append(report.Issues, dto.ValidationIssue{
				File:     name,
				Date:     parsed.Date,
				Issue:    err.Error(),
				Severity: dto.SeverityError,
			})
			continue
		}
		report.Valid++
	}
	return report, nil
}

func (c *journalConverter) extractFile(dir, name string) (ExtractedEntry, error) {
	body, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ExtractedEntry{}, fmt.Errorf("failed to read file: %w", err)
	}
	return c.extractor.Extract(Document{Name: name, Body: body})
}

// listDocuments returns the supported files directly inside dir, in name order.
func (c *journalConverter) listDocuments(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: journal directory %s", common.ErrSourceNotFound, dir)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		name := de.Name()
		if !c.extensionEnabled(name) || !c.extractor.Supports(name) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func (c *journalConverter) extensionEnabled(name string) bool {
	if len(c.cfg.Extensions) == 0 {
		return true
	}
	return utils.ContainsString(c.cfg.Extensions, strings.ToLower(filepath.Ext(name)))
}
