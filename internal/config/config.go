package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"3010"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Run pending migrations when the server starts
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	Database DatabaseConfig

	Suggestions SuggestionsConfig

	Scheduler SchedulerConfig

	Otel OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"120s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds connection settings. Driver "postgres" is the
// production backend; "sqlite" serves standalone installs and tooling.
type DatabaseConfig struct {
	Driver       string        `env:"DB_DRIVER" envDefault:"postgres"`
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"ludora"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"ludora"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"content.db"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// SQLiteDSN returns the go-sqlite3 DSN with foreign keys and a busy timeout enabled.
func (d *DatabaseConfig) SQLiteDSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.SQLitePath)
}

// IsSQLite returns true when the SQLite backend is selected
func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == DriverSQLite
}

// Validate checks the driver selection
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverPostgres, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %q or %q)", d.Driver, DriverPostgres, DriverSQLite)
	}
}

// SuggestionsConfig tunes the match suggestion engine
type SuggestionsConfig struct {
	// Maximum number of suggestions returned per request
	Limit int `env:"SUGGESTIONS_LIMIT" envDefault:"10"`

	// How long a loaded catalog snapshot is served before it is reloaded
	SnapshotTTL time.Duration `env:"SUGGESTIONS_SNAPSHOT_TTL" envDefault:"10m"`

	// Background refresh interval; 0 disables the scheduled refresh
	RefreshInterval time.Duration `env:"SUGGESTIONS_REFRESH_INTERVAL" envDefault:"5m"`
}

// SchedulerConfig controls background maintenance tasks
type SchedulerConfig struct {
	Enabled bool `env:"SCHEDULER_ENABLED" envDefault:"true"`

	// Interval for removing tag assignments whose tag no longer exists
	TagOrphanCleanupInterval time.Duration `env:"TAG_ORPHAN_CLEANUP_INTERVAL" envDefault:"1h"`

	// Cron override for the orphan cleanup, e.g. "0 3 * * *"; empty uses the interval
	TagOrphanCleanupSchedule string `env:"TAG_ORPHAN_CLEANUP_SCHEDULE" envDefault:""`
}

// OtelConfig configures trace export. No endpoint means no tracing.
type OtelConfig struct {
	ExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"content-service"`
	SamplingRate     float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
}

// Enabled reports whether spans are exported.
func (c OtelConfig) Enabled() bool {
	return c.ExporterEndpoint != ""
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_driver", cfg.Database.Driver),
		slog.String("db_host", cfg.Database.Host),
	)

	return cfg, nil
}

// Load parses and validates configuration without logging; used by the CLI.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if cfg.Suggestions.Limit <= 0 {
		cfg.Suggestions.Limit = 10
	}
	return cfg, nil
}
