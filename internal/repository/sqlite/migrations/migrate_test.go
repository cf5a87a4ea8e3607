package migrations

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	tables := []string{"workspaces", "clients", "projects", "time_entries", "invoice_blocks", "tags", "entry_tags", "project_tags"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var version int
	require.NoError(t, db.QueryRow("SELECT MAX(version) FROM migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunMigrations_CreatesPartialUniqueIndexes(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	for _, index := range []string{"idx_time_entries_single_open", "idx_invoice_blocks_single_active"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'index' AND name = ?", index).Scan(&name)
		require.NoError(t, err, "index %s should exist", index)
	}
}
