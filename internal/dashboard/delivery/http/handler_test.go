package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mood-journal/internal/config"
	"mood-journal/internal/dashboard/service"
	"mood-journal/internal/dto"
	"mood-journal/internal/repository"
	pkgconfig "mood-journal/pkg/config"
	"mood-journal/pkg/database"
	"mood-journal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) repository.JournalEntryRepository {
	t.Helper()
	lazy := database.NewLazy(pkgconfig.Database{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "journal_mood.db"),
		AutoMigrate: true,
	}, logger.NewNop())
	t.Cleanup(func() { _ = lazy.Close() })

	repo := repository.NewJournalEntryRepository(lazy, config.Store{})
	entry := func(date, title string, score float64, mood dto.MoodCategory, keywords ...string) dto.AnalyzedEntry {
		d, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		return dto.AnalyzedEntry{
			JournalEntry:   dto.JournalEntry{Date: d, Title: title, Content: title + " today"},
			SentimentScore: score,
			MoodCategory:   mood,
			Keywords:       keywords,
		}
	}
	_, err := repo.Insert(context.Background(), []dto.AnalyzedEntry{
		entry("2025-01-06", "Work stress", -0.6, dto.MoodVeryNegative, "work", "stress"),
		entry("2025-03-15", "Park walk", 0.4, dto.MoodPositive, "park", "walk", "work"),
		entry("2025-06-01", "Birthday", 0.8, dto.MoodVeryPositive, "birthday", "work"),
	})
	require.NoError(t, err)
	return repo
}

func newServer(svc service.DashboardService, runs *stubIngestionService) *echo.Echo {
	e := echo.New()
	api := e.Group("/api/v1")
	NewDashboardHandler(svc, logger.NewNop()).RegisterRoutes(api)
	if runs != nil {
		NewRunHandler(runs, logger.NewNop()).RegisterRoutes(api.Group("/runs"))
	}
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDashboardHandler_GetEntries(t *testing.T) {
	e := newServer(service.NewDashboardService(newStore(t), 20, logger.NewNop()), nil)

	tests := []struct {
		name   string
		target string
		titles []string
	}{
		{"all newest first", "/api/v1/entries", []string{"Birthday", "Park walk", "Work stress"}},
		{"date range", "/api/v1/entries?start=2025-01-01&end=2025-03-15", []string{"Park walk", "Work stress"}},
		{"mood", "/api/v1/entries?mood=very%20negative", []string{"Work stress"}},
		{"search", "/api/v1/entries?q=walk", []string{"Park walk"}},
		{"quick range", "/api/v1/entries?range=last_90_days", []string{"Birthday", "Park walk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var records []dto.StoredRecord
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
			titles := make([]string, 0, len(records))
			for _, r := range records {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestDashboardHandler_BadRequest(t *testing.T) {
	e := newServer(service.NewDashboardService(newStore(t), 20, logger.NewNop()), nil)

	targets := []string{
		"/api/v1/entries?mood=ecstatic",
		"/api/v1/entries?start=2025-13-01",
		"/api/v1/entries?start=2025-03-01&end=2025-01-01",
		"/api/v1/summary?range=forever",
		"/api/v1/keywords?n=abc",
		"/api/v1/keywords?n=-3",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := get(e, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestDashboardHandler_Statistics(t *testing.T) {
	e := newServer(service.NewDashboardService(newStore(t), 20, logger.NewNop()), nil)

	rec := get(e, "/api/v1/statistics")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats dto.MoodStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalEntries)
	assert.InDelta(t, 0.2, stats.AverageSentiment, 1e-9)
	assert.Equal(t, 1, stats.MoodDistribution[dto.MoodPositive])
	assert.InDelta(t, 0.4, stats.MonthlySentiment["2025-03"], 1e-9)
}

func TestDashboardHandler_SummaryAndKeywords(t *testing.T) {
	e := newServer(service.NewDashboardService(newStore(t), 20, logger.NewNop()), nil)

	rec := get(e, "/api/v1/summary?range=this_year")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary dto.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Summary.Count)
	assert.Equal(t, 146, summary.Summary.DateSpanDays)
	require.NotEmpty(t, summary.Weekdays)
	assert.Equal(t, "Monday", summary.Weekdays[0].Name)

	rec = get(e, "/api/v1/keywords?n=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var keywords []dto.KeywordCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &keywords))
	assert.Equal(t, []dto.KeywordCount{{Keyword: "work", Count: 3}}, keywords)
}

type failingDashboardService struct{ err error }

func (s failingDashboardService) ListEntries(ctx context.Context, q dto.EntryQuery) ([]dto.StoredRecord, error) {
	return nil, s.err
}

func (s failingDashboardService) GetStatistics(ctx context.Context) (*dto.MoodStatistics, error) {
	return nil, s.err
}

func (s failingDashboardService) GetSummary(ctx context.Context, q dto.EntryQuery) (*dto.DashboardSummary, error) {
	return nil, s.err
}

func (s failingDashboardService) GetTopKeywords(ctx context.Context, q dto.KeywordQuery) ([]dto.KeywordCount, error) {
	return nil, s.err
}

func TestDashboardHandler_StoreError(t *testing.T) {
	e := newServer(failingDashboardService{err: errors.New("database is locked")}, nil)

	for _, target := range []string{"/api/v1/entries", "/api/v1/statistics", "/api/v1/summary", "/api/v1/keywords"} {
		t.Run(target, func(t *testing.T) {
			rec := get(e, target)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotContains(t, rec.Body.String(), "database is locked")
		})
	}
}

type stubIngestionService struct {
	runs      []*dto.IngestionRunResponse
	err       error
	lastLimit int
}

func (s *stubIngestionService) IngestDirectory(ctx context.Context, dir string) (*dto.IngestionSummary, error) {
	return nil, errors.New("not supported")
}

func (s *stubIngestionService) IngestCSV(ctx context.Context, path string) (*dto.IngestionSummary, error) {
	return nil, errors.New("not supported")
}

func (s *stubIngestionService) AnalyzeCSV(ctx context.Context, input, output string) (*dto.IngestionSummary, error) {
	return nil, errors.New("not supported")
}

func (s *stubIngestionService) ListRuns(ctx context.Context, limit int) ([]*dto.IngestionRunResponse, error) {
	s.lastLimit = limit
	return s.runs, s.err
}

func TestRunHandler_GetRuns(t *testing.T) {
	runs := &stubIngestionService{runs: []*dto.IngestionRunResponse{
		{RunID: "b", Kind: "csv", Status: "failed", ErrorMessage: "source not found"},
		{RunID: "a", Kind: "directory", Status: "completed", Duration: 12},
	}}
	e := newServer(failingDashboardService{}, runs)

	rec := get(e, "/api/v1/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultRunLimit, runs.lastLimit)

	var got []dto.IngestionRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].RunID)
	assert.Equal(t, int64(12), got[1].Duration)

	rec = get(e, "/api/v1/runs?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, runs.lastLimit)

	rec = get(e, "/api/v1/runs?limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	runs.err = errors.New("boom")
	rec = get(e, "/api/v1/runs")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
