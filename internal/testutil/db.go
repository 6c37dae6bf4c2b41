// Package testutil holds shared helpers for package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/internal/migrate"
	"github.com/ludora/content-service/pkg/logger"
)

// NewSQLiteDB returns an in-memory SQLite database with every migration
// applied. It is closed when the test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrate.New(db, config.DriverSQLite, logger.Discard()).Up(context.Background()))
	return db
}
