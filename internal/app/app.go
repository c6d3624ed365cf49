// Package app wires configuration, logging, storage and services for the
// command line binaries.
package app

import (
	"fmt"
	"time"

	analyzer "mood-journal/internal/analyzer/service"
	"mood-journal/internal/config"
	converter "mood-journal/internal/converter/service"
	dashboard "mood-journal/internal/dashboard/service"
	ingestion "mood-journal/internal/ingestion/service"
	"mood-journal/internal/repository"
	"mood-journal/pkg/database"
	"mood-journal/pkg/logger"
)

// App holds every component a command may need. The database is opened
// lazily, so commands that never touch the store never create it.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *database.Lazy

	CSVRepo   repository.CSVRepository
	EntryRepo repository.JournalEntryRepository
	RunRepo   repository.IngestionRunRepository

	Converter converter.JournalConverter
	Analyzer  analyzer.MoodAnalyzer
	Ingestion ingestion.IngestionService
	Dashboard dashboard.DashboardService
}

// New loads the configuration at configPath and builds the App.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return Build(cfg, appLogger), nil
}

// NewLogger builds the logger described by cfg, with the optional rotating file.
func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(cfg.Logger.Level, cfg.Logger.Encoding, logger.WithFile(logger.FileConfig{
		Path:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	}))
}

// Build wires the components for an already loaded configuration.
func Build(cfg *config.Config, appLogger *logger.Logger) *App {
	db := database.NewLazy(cfg.Database, appLogger)

	csvRepo := repository.NewCSVRepository()
	entryRepo := repository.NewJournalEntryRepository(db, cfg.Store)
	runRepo := repository.NewIngestionRunRepository(db)

	var scorer analyzer.Scorer = analyzer.NewVaderScorer()
	if cfg.Analyzer.CacheTTL > 0 {
		cleanup := cfg.Analyzer.CacheCleanupInterval
		if cleanup <= 0 {
			cleanup = time.Hour
		}
		scorer = analyzer.NewCachedScorer(scorer, cfg.Analyzer.CacheTTL, cleanup)
	}
	moodAnalyzer := analyzer.NewMoodAnalyzer(cfg.Analyzer, scorer)

	journalConverter := converter.NewJournalConverter(cfg.Converter, converter.NewDefaultEntryExtractor(), csvRepo, appLogger)

	return &App{
		Config:    cfg,
		Logger:    appLogger,
		DB:        db,
		CSVRepo:   csvRepo,
		EntryRepo: entryRepo,
		RunRepo:   runRepo,
		Converter: journalConverter,
		Analyzer:  moodAnalyzer,
		Ingestion: ingestion.NewIngestionService(journalConverter, moodAnalyzer, csvRepo, entryRepo, runRepo, appLogger),
		Dashboard: dashboard.NewDashboardService(entryRepo, cfg.Analyzer.TopKeywords, appLogger),
	}
}

// Close releases the database connection and flushes the logger.
func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("Failed to close database", logger.ErrorField(err))
	}
	_ = a.Logger.Sync()
}
