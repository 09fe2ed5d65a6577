package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "workbench.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "storage"))
	assert.True(t, tableExists(t, db, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "workbench.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "storage"))
}

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "workbench.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Set(ctx, "auth_token", []byte("abc")))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	v, err := NewSQLiteRepository(db).Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestOpenSQLite_InMemory(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, tableExists(t, db, "storage"))
}

func TestOpenSQLite_CreatesMissingDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state", "nested", "workbench.db")

	db, err := OpenSQLite(context.Background(), dsn)
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, tableExists(t, db, "storage"))
}

func TestIsFilePath(t *testing.T) {
	assert.True(t, isFilePath("workbench.db"))
	assert.True(t, isFilePath("/var/lib/wb/workbench.db"))
	assert.False(t, isFilePath(":memory:"))
	assert.False(t, isFilePath("file:wb.db?mode=memory"))
	assert.False(t, isFilePath(""))
}
