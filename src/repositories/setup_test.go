package repositories_test

import (
	"context"
	"database/sql"
	"os"
	"painel/src/database"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to PAINEL_TEST_DATABASE_URL, applies the migrations
// and truncates the tables. Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("PAINEL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PAINEL_TEST_DATABASE_URL not set")
	}

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "../../migrations"))

	ctx := context.Background()
	pool, err := database.Connect(ctx, dsn, 5)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, table := range []string{"observations", "refresh_logs"} {
		_, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
	return pool
}
