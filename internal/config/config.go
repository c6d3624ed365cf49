package config

import (
	"time"

	"mood-journal/pkg/common"
	"mood-journal/pkg/config"
)

// Converter holds journal conversion configuration.
type Converter struct {
	JournalDir string   `mapstructure:"journal_dir"`
	OutputFile string   `mapstructure:"output_file"`
	Extensions []string `mapstructure:"extensions"`

	// Date sanity window used by the validate command.
	MinYear        int `mapstructure:"min_year"`
	MaxYear        int `mapstructure:"max_year"`
	MaxFutureYears int `mapstructure:"max_future_years"`
	MaxPastYears   int `mapstructure:"max_past_years"`
}

// Analyzer holds mood analysis configuration.
type Analyzer struct {
	MinKeywordLength     int           `mapstructure:"min_keyword_length"`
	MaxKeywords          int           `mapstructure:"max_keywords"`
	TopKeywords          int           `mapstructure:"top_keywords"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
	CacheCleanupInterval time.Duration `mapstructure:"cache_cleanup_interval"`
}

// Store holds entry store configuration.
type Store struct {
	Deduplicate bool `mapstructure:"deduplicate"`
	BatchSize   int  `mapstructure:"batch_size"`
}

// Config holds the full configuration shared by the commands.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Converter Converter       `mapstructure:"converter"`
	Analyzer  Analyzer        `mapstructure:"analyzer"`
	Store     Store           `mapstructure:"store"`
	API       config.API      `mapstructure:"api"`
}

// Defaults returns the value of every key when neither the file nor the
// environment sets it.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":    "mood-journal",
		"app.env":     "local",
		"app.version": "0.1.0",

		"logger.level":        "info",
		"logger.encoding":     "console",
		"logger.file":         "",
		"logger.max_size_mb":  10,
		"logger.max_backups":  3,
		"logger.max_age_days": 28,

		"database.driver":            common.DriverSQLite,
		"database.path":              common.DefaultDBPath,
		"database.host":              "localhost",
		"database.port":              5432,
		"database.user":              "",
		"database.password":          "",
		"database.name":              "journal_mood",
		"database.ssl_mode":          "disable",
		"database.time_zone":         "",
		"database.max_idle_conns":    2,
		"database.max_open_conns":    5,
		"database.conn_max_lifetime": "",
		"database.log_level":         "silent",
		"database.auto_migrate":      true,

		"converter.journal_dir":      common.DefaultJournalDir,
		"converter.output_file":      common.DefaultOutputFile,
		"converter.extensions":       []string{".md", ".markdown", ".txt", ".html", ".htm"},
		"converter.min_year":         1900,
		"converter.max_year":         2100,
		"converter.max_future_years": 10,
		"converter.max_past_years":   50,

		"analyzer.min_keyword_length":     4,
		"analyzer.max_keywords":           50,
		"analyzer.top_keywords":           20,
		"analyzer.cache_ttl":              "30m",
		"analyzer.cache_cleanup_interval": "1h",

		"store.deduplicate": false,
		"store.batch_size":  100,

		"api.host": "127.0.0.1",
		"api.port": 8501,
	}
}

// Load loads the configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}
