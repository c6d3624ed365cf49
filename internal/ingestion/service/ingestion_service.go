package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	analyzer "mood-journal/internal/analyzer/service"
	converter "mood-journal/internal/converter/service"
	"mood-journal/internal/dto"
	"mood-journal/internal/entity"
	"mood-journal/internal/repository"
	"mood-journal/pkg/common"
	"mood-journal/pkg/logger"
	"mood-journal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IngestionService runs journal sources through analysis into the store and
// records every ingestion as a run.
type IngestionService interface {
	// IngestDirectory converts a journal directory in memory, analyses the
	// entries and stores them.
	IngestDirectory(ctx context.Context, dir string) (*dto.IngestionSummary, error)
	// IngestCSV reads a CSV interchange file, analyses the rows and stores them.
	IngestCSV(ctx context.Context, path string) (*dto.IngestionSummary, error)
	// AnalyzeCSV writes the enriched CSV for input without touching the store.
	AnalyzeCSV(ctx context.Context, input, output string) (*dto.IngestionSummary, error)
	// ListRuns returns up to limit recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*dto.IngestionRunResponse, error)
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	journalConverter converter.JournalConverter,
	moodAnalyzer analyzer.MoodAnalyzer,
	csvRepo repository.CSVRepository,
	entryRepo repository.JournalEntryRepository,
	runRepo repository.IngestionRunRepository,
	log *logger.Logger,
) IngestionService {
	return &ingestionService{
		converter: journalConverter,
		analyzer:  moodAnalyzer,
		csvRepo:   csvRepo,
		entryRepo: entryRepo,
		runRepo:   runRepo,
		logger:    log,
	}
}

type ingestionService struct {
	converter converter.JournalConverter
	analyzer  analyzer.MoodAnalyzer
	csvRepo   repository.CSVRepository
	entryRepo repository.JournalEntryRepository
	runRepo   repository.IngestionRunRepository
	logger    *logger.Logger
}

func (s *ingestionService) IngestDirectory(ctx context.Context, dir string) (*dto.IngestionSummary, error) {
	return s.record(ctx, entity.RunKindDirectory, dir, func(ctx context.Context) (*dto.IngestionSummary, error) {
		entries, conversion, err := s.converter.Collect(ctx, dir)
		summary := &dto.IngestionSummary{Conversion: conversion}
		if err != nil {
			return summary, err
		}
		summary.RowsRead = len(entries)
		return summary, s.store(ctx, entries, summary)
	})
}

func (s *ingestionService) IngestCSV(ctx context.Context, path string) (*dto.IngestionSummary, error) {
	return s.record(ctx, entity.RunKindCSV, path, func(ctx context.Context) (*dto.IngestionSummary, error) {
		summary, entries, err := s.readCSV(path)
		if err != nil {
			return summary, err
		}
		return summary, s.store(ctx, entries, summary)
	})
}

func (s *ingestionService) AnalyzeCSV(ctx context.Context, input, output string) (*dto.IngestionSummary, error) {
	summary, entries, err := s.readCSV(input)
	if err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	analyzed := s.analyzer.AnalyzeAll(entries)
	summary.Analyzed = len(analyzed)
	if err := s.csvRepo.WriteAnalyzed(output, analyzed); err != nil {
		return summary, fmt.Errorf("failed to write %s: %w", output, err)
	}

	s.logger.Info("Analyzed journal entries",
		logger.StringField("input", input),
		logger.StringField("output", output),
		logger.IntField("analyzed", summary.Analyzed),
	)
	return summary, nil
}

func (s *ingestionService) ListRuns(ctx context.Context, limit int) ([]*dto.IngestionRunResponse, error) {
	runs, err := s.runRepo.FindRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to get ingestion runs", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.IngestionRunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, mapToIngestionRunResponse(&runs[i]))
	}
	return responses, nil
}

func (s *ingestionService) readCSV(path string) (*dto.IngestionSummary, []dto.JournalEntry, error) {
	result, err := s.csvRepo.ReadEntries(path)
	if err != nil {
		return &dto.IngestionSummary{}, nil, err
	}

	summary := &dto.IngestionSummary{RowsRead: result.RowsRead, InvalidRows: result.InvalidRows}
	if result.InvalidRows > 0 {
		s.logger.Warn("Dropped CSV rows with invalid dates", logger.StringField("path", path), logger.IntField("count", result.InvalidRows))
	}
	if len(result.Entries) == 0 {
		return summary, nil, fmt.Errorf("%w: %s", common.ErrNoEntries, path)
	}
	return summary, result.Entries, nil
}

func (s *ingestionService) store(ctx context.Context, entries []dto.JournalEntry, summary *dto.IngestionSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	analyzed := s.analyzer.AnalyzeAll(entries)
	summary.Analyzed = len(analyzed)

	inserted, err := s.entryRepo.Insert(ctx, analyzed)
	if err != nil {
		return err
	}
	summary.Inserted = inserted
	summary.Duplicates = len(analyzed) - inserted
	return nil
}

// record wraps fn in an ingestion run: the run is created as running, then
// marked completed or failed with the summary and error message.
func (s *ingestionService) record(
	ctx context.Context,
	kind entity.RunKind,
	source string,
	fn func(ctx context.Context) (*dto.IngestionSummary, error),
) (*dto.IngestionSummary, error) {
	run := &entity.IngestionRun{
		RunID:     uuid.NewString(),
		Kind:      kind,
		Source:    source,
		Status:    entity.RunStatusRunning,
		StartedAt: utils.TimeNow(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.Error("Failed to create ingestion run", logger.ErrorField(err), logger.StringField("source", source))
		return nil, fmt.Errorf("failed to create ingestion run: %w", err)
	}
	s.logger.Info("Ingestion started", logger.StringField("run_id", run.RunID), logger.StringField("kind", string(kind)), logger.StringField("source", source))

	summary, err := fn(ctx)
	if err != nil {
		s.logger.Error("Ingestion failed", logger.ErrorField(err), logger.StringField("run_id", run.RunID))
		run.Status = entity.RunStatusFailed
		run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
	} else {
		s.logger.Info("Ingestion completed",
			logger.StringField("run_id", run.RunID),
			logger.IntField("inserted", summary.Inserted),
			logger.IntField("duplicates", summary.Duplicates),
		)
		run.Status = entity.RunStatusCompleted
	}

	if summary != nil {
		if payload, mErr := json.Marshal(summary); mErr == nil {
			run.Summary = datatypes.JSON(payload)
		}
	}
	run.CompletedAt = sql.NullTime{Time: utils.TimeNow(), Valid: true}

	if uErr := s.runRepo.Update(context.WithoutCancel(ctx), run); uErr != nil {
		s.logger.Error("Failed to update ingestion run", logger.ErrorField(uErr), logger.StringField("run_id", run.RunID))
	}
	return summary, err
}

func mapToIngestionRunResponse(run *entity.IngestionRun) *dto.IngestionRunResponse {
	var duration int64
	if run.CompletedAt.Valid {
		duration = run.CompletedAt.Time.Sub(run.StartedAt).Milliseconds()
	}

	resp := &dto.IngestionRunResponse{
		RunID:        run.RunID,
		Kind:         string(run.Kind),
		Source:       run.Source,
		Status:       string(run.Status),
		StartedAt:    run.StartedAt,
		Duration:     duration,
		ErrorMessage: run.ErrorMessage.String,
	}
	if len(run.Summary) > 0 {
		resp.Summary = json.RawMessage(run.Summary)
	}
	return resp
}
