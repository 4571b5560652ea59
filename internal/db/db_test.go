package db_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/ergolog/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	defer conn.Close()

	require.NoError(t, db.Migrate(ctx, conn))
	require.NoError(t, db.Migrate(ctx, conn))

	var versions int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 2, versions)

	var equipment int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM equipment_types WHERE name = 'SKILLROW'`).Scan(&equipment))
	assert.Equal(t, 1, equipment)

	for _, table := range []string{"workouts", "summary_totals_cache"} {
		var name string
		err := conn.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ergolog.db")

	database, err := db.Open(path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.PingContext(context.Background()))
	assert.FileExists(t, path)
}
