package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db",
		Port:     "5433",
		Username: "u",
		Password: "p",
		Database: "customizer",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=customizer sslmode=disable", dsn)
}

func TestOpenSQLite_FileMigrateAndDump(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenSQLite(filepath.Join(dir, "live.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Ping(db))
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&model.Design{}))

	dump := filepath.Join(dir, "dump.db")
	require.NoError(t, os.WriteFile(dump, []byte("stale"), 0644))

	_, err = DumpSQLite(db, dump)
	require.NoError(t, err)

	info, err := os.Stat(dump)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(len("stale")))

	copyDB, err := OpenSQLite(dump, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(copyDB) })
	assert.True(t, copyDB.Migrator().HasTable(&model.Design{}))
}

func TestDumpSQLite_NoPath(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	_, err = DumpSQLite(db, "")
	assert.Error(t, err)
}
