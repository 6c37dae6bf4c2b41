// Package migrate applies the embedded Goose migrations for the configured backend.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/migrations"
	"github.com/ludora/content-service/pkg/logger"
)

// Module provides the Migrator and, when MIGRATE_ON_START is set, runs
// pending migrations before the HTTP server starts.
var Module = fx.Module("migrate",
	fx.Provide(NewMigrator),
	fx.Invoke(RegisterStartupMigration),
)

// Migrator handles database migrations.
type Migrator struct {
	db      *bun.DB
	dialect string
	dir     string
	log     *slog.Logger
}

// NewMigrator creates a Migrator for the configured driver.
func NewMigrator(db *bun.DB, cfg *config.Config, log *slog.Logger) *Migrator {
	return New(db, cfg.Database.Driver, log)
}

// New creates a Migrator for the given driver name ("postgres" or "sqlite").
func New(db *bun.DB, driver string, log *slog.Logger) *Migrator {
	m := &Migrator{
		db:      db,
		dialect: "postgres",
		dir:     "postgres",
		log:     log.With(logger.Scope("migrator")),
	}
	if driver == config.DriverSQLite {
		m.dialect = "sqlite3"
		m.dir = "sqlite"
	}
	return m
}

func (m *Migrator) prepare() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Up runs all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	m.log.Info("running database migrations", slog.String("dialect", m.dialect))

	if err := m.prepare(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db.DB, m.dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.log.Info("migrations completed", slog.Int64("version", version))
	return nil
}

// Down rolls back the last migration.
func (m *Migrator) Down(ctx context.Context) error {
	m.log.Info("rolling back last migration")

	if err := m.prepare(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, m.db.DB, m.dir); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	m.log.Info("rollback completed")
	return nil
}

// Status returns the applied state of every known migration.
func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	fsys, err := fs.Sub(migrations.FS, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations dir: %w", err)
	}
	provider, err := goose.NewProvider(goose.Dialect(m.dialect), m.db.DB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}
	return statuses, nil
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	if err := m.prepare(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersionContext(ctx, m.db.DB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

// RegisterStartupMigration runs Up in the OnStart phase when enabled.
func RegisterStartupMigration(lc fx.Lifecycle, cfg *config.Config, m *Migrator) {
	if !cfg.MigrateOnStart {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return m.Up(ctx)
		},
	})
}
