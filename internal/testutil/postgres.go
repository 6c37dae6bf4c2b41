package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/internal/migrate"
	"github.com/ludora/content-service/pkg/logger"
)

// PostgresURLEnv names the variable holding the test database DSN.
const PostgresURLEnv = "TEST_DATABASE_URL"

var contentTables = []string{
	"content_words", "content_words_en", "content_images", "content_qa",
	"content_attributes", "content_lists", "content_relationships",
	"tags", "content_tags",
}

// NewPostgresDB connects to the database in TEST_DATABASE_URL, migrates it
// and empties every content table. The test is skipped when the variable
// is unset.
func NewPostgresDB(t testing.TB) *bun.DB {
	t.Helper()

	dsn := os.Getenv(PostgresURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, migrate.New(db, config.DriverPostgres, logger.Discard()).Up(ctx))

	for _, table := range contentTables {
		_, err := db.NewTruncateTable().TableExpr(table).Exec(ctx)
		require.NoError(t, err)
	}
	return db
}
