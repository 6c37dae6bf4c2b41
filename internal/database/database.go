package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/fx"

	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/pkg/logger"
)

var Module = fx.Module("database",
	fx.Provide(
		NewBunDB,
		// Provide bun.IDB interface binding for modules that use the interface
		fx.Annotate(
			func(db *bun.DB) bun.IDB { return db },
			fx.As(new(bun.IDB)),
		),
	),
)

// NewBunDB opens the configured backend and closes it when the app stops.
func NewBunDB(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*bun.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, closeFn, err := Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing database")
			return closeFn()
		},
	})

	return db, nil
}

// Open connects to the configured backend and returns the Bun DB together
// with a close function releasing every underlying resource.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*bun.DB, func() error, error) {
	if cfg.Database.IsSQLite() {
		return openSQLite(cfg, log.With(logger.Scope("database")))
	}
	return openPostgres(ctx, cfg, log.With(logger.Scope("database")))
}

func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*bun.DB, func() error, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("parse pgx config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnIdleTime = cfg.Database.MaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database pool created",
		slog.String("host", cfg.Database.Host),
		slog.Int("port", cfg.Database.Port),
		slog.String("database", cfg.Database.Database),
		slog.Int("max_conns", cfg.Database.MaxOpenConns),
	)

	// Convert pgx pool to database/sql compatible connection
	sqldb := stdlib.OpenDBFromPool(pool)
	db := bun.NewDB(sqldb, pgdialect.New())
	addQueryHook(db, cfg, log)

	closeFn := func() error {
		err := db.Close()
		pool.Close()
		return err
	}
	return db, closeFn, nil
}

func openSQLite(cfg *config.Config, log *slog.Logger) (*bun.DB, func() error, error) {
	sqldb, err := sql.Open("sqlite3", cfg.Database.SQLiteDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY churn.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	addQueryHook(db, cfg, log)

	log.Info("sqlite database opened", slog.String("path", cfg.Database.SQLitePath))

	return db, db.Close, nil
}

func addQueryHook(db *bun.DB, cfg *config.Config, log *slog.Logger) {
	if cfg.Database.QueryDebug {
		db.AddQueryHook(&queryLoggingHook{log: log.With(logger.Scope("bun"))})
	}
}

// queryLoggingHook implements bun.QueryHook for query logging
type queryLoggingHook struct {
	log *slog.Logger
}

func (h *queryLoggingHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLoggingHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.log.Error("query error",
			slog.String("query", event.Query),
			slog.Duration("duration", duration),
			logger.Error(event.Err),
		)
		return
	}

	// Log slow queries as warnings
	if duration > 3*time.Second {
		h.log.Warn("slow query",
			slog.String("query", event.Query),
			slog.Duration("duration", duration),
		)
		return
	}

	h.log.Debug("query",
		slog.String("query", event.Query),
		slog.Duration("duration", duration),
	)
}
