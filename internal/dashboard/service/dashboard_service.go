package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mood-journal/internal/dto"
	"mood-journal/internal/repository"
	"mood-journal/internal/statistics"
	"mood-journal/pkg/common"
	"mood-journal/pkg/logger"
)

// DashboardService answers the read queries of the dashboard. Every call
// builds its own filter from the query; nothing is kept between calls.
type DashboardService interface {
	ListEntries(ctx context.Context, q dto.EntryQuery) ([]dto.StoredRecord, error)
	GetStatistics(ctx context.Context) (*dto.MoodStatistics, error)
	GetSummary(ctx context.Context, q dto.EntryQuery) (*dto.DashboardSummary, error)
	GetTopKeywords(ctx context.Context, q dto.KeywordQuery) ([]dto.KeywordCount, error)
}

// NewDashboardService creates a new DashboardService. topKeywords is used when
// a keyword query does not ask for a count.
func NewDashboardService(entryRepo repository.JournalEntryRepository, topKeywords int, log *logger.Logger) DashboardService {
	return &dashboardService{
		entryRepo:   entryRepo,
		topKeywords: topKeywords,
		logger:      log,
	}
}

type dashboardService struct {
	entryRepo   repository.JournalEntryRepository
	topKeywords int
	logger      *logger.Logger
}

func (s *dashboardService) ListEntries(ctx context.Context, q dto.EntryQuery) ([]dto.StoredRecord, error) {
	filter, quick, err := BuildFilter(q)
	if err != nil {
		return nil, err
	}

	records, err := s.entryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get journal entries", logger.ErrorField(err))
		return nil, err
	}
	return filter.WithRange(quick, records).Apply(records), nil
}

func (s *dashboardService) GetStatistics(ctx context.Context) (*dto.MoodStatistics, error) {
	stats, err := s.entryRepo.Statistics(ctx)
	if err != nil {
		s.logger.Error("Failed to get mood statistics", logger.ErrorField(err))
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) GetSummary(ctx context.Context, q dto.EntryQuery) (*dto.DashboardSummary, error) {
	records, err := s.ListEntries(ctx, q)
	if err != nil {
		return nil, err
	}

	entries := dto.Entries(records)
	stats := statistics.MoodStatistics(entries)
	return &dto.DashboardSummary{
		Summary:          statistics.Summarize(entries),
		MoodDistribution: stats.MoodDistribution,
		MonthlySentiment: stats.MonthlySentiment,
		Weekdays:         statistics.WeekdaySentiment(entries),
		TopKeywords:      statistics.TopKeywords(entries, s.topKeywords),
	}, nil
}

func (s *dashboardService) GetTopKeywords(ctx context.Context, q dto.KeywordQuery) ([]dto.KeywordCount, error) {
	if q.N < 0 {
		return nil, fmt.Errorf("%w: n must not be negative", statistics.ErrInvalidFilter)
	}
	n := q.N
	if n == 0 {
		n = s.topKeywords
	}

	records, err := s.ListEntries(ctx, q.EntryQuery)
	if err != nil {
		return nil, err
	}
	return statistics.TopKeywords(dto.Entries(records), n), nil
}

// BuildFilter turns query parameters into a Filter and quick range. Unknown
// moods and ranges, malformed dates and an inverted range are rejected with
// statistics.ErrInvalidFilter.
func BuildFilter(q dto.EntryQuery) (statistics.Filter, statistics.QuickRange, error) {
	var filter statistics.Filter

	quick, err := statistics.ParseQuickRange(q.Range)
	if err != nil {
		return filter, "", err
	}

	if filter.Start, err = parseBound("start", q.Start); err != nil {
		return filter, "", err
	}
	if filter.End, err = parseBound("end", q.End); err != nil {
		return filter, "", err
	}

	if strings.TrimSpace(q.Mood) != "" {
		category, ok := dto.ParseMoodCategory(q.Mood)
		if !ok {
			return filter, "", fmt.Errorf("%w: unknown mood %q", statistics.ErrInvalidFilter, q.Mood)
		}
		filter.Category = category
	}
	filter.Search = strings.TrimSpace(q.Search)

	if err := filter.Validate(); err != nil {
		return filter, "", err
	}
	return filter, quick, nil
}

func parseBound(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(common.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", statistics.ErrInvalidFilter, name, value)
	}
	return &t, nil
}
