package migrate

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/pkg/logger"
)

func openSQLite(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *bun.DB, name string) bool {
	t.Helper()
	var n int
	err := db.NewRaw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(context.Background(), &n)
	require.NoError(t, err)
	return n == 1
}

func TestMigrator_UpCreatesSchema(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	m := New(db, config.DriverSQLite, logger.Discard())

	require.NoError(t, m.Up(ctx))

	for _, table := range []string{
		"content_words", "content_words_en", "content_images", "content_qa",
		"content_attributes", "content_lists", "content_relationships",
		"tags", "content_tags",
	} {
		assert.True(t, tableExists(t, db, table), table)
	}

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	// Running again is a no-op.
	require.NoError(t, m.Up(ctx))
}

func TestMigrator_ContentTagsUniqueTriple(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, New(db, config.DriverSQLite, logger.Discard()).Up(ctx))

	insert := "INSERT INTO content_tags (id, content_type, content_id, tag_id) VALUES (?, 'Image', '7', 't1')"
	_, err := db.ExecContext(ctx, insert, "a1")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "a2")
	assert.Error(t, err)
}

func TestMigrator_DownAndStatus(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	m := New(db, config.DriverSQLite, logger.Discard())
	require.NoError(t, m.Up(ctx))

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, goose.StateApplied, statuses[0].State)

	require.NoError(t, m.Down(ctx))
	assert.False(t, tableExists(t, db, "content_relationships"))

	statuses, err = m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, goose.StatePending, statuses[0].State)
}

func TestNew_PicksDialectByDriver(t *testing.T) {
	pg := New(nil, config.DriverPostgres, logger.Discard())
	assert.Equal(t, "postgres", pg.dialect)
	assert.Equal(t, "postgres", pg.dir)

	lite := New(nil, config.DriverSQLite, logger.Discard())
	assert.Equal(t, "sqlite3", lite.dialect)
	assert.Equal(t, "sqlite", lite.dir)
}
