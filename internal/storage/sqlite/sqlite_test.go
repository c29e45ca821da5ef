package sqlitestorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/database"
	"github.com/modgarage/customizer/internal/model"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/internal/storage/storagetest"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendContract_File(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		b, err := New(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "designs", "c.db")}, false, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, b.Init())
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestFileBackend_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.db")

	b, err := New(config.SQLiteConfig{Path: path}, true, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())

	d := valuation.DefaultDesign("sultan")
	d.Name = "Daily Driver"
	require.NoError(t, b.Create(context.Background(), &d))
	assert.Equal(t, path, b.SnapshotPath())
	require.NoError(t, b.Close())

	reopened, err := New(config.SQLiteConfig{Path: path}, true, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, reopened.Init())
	defer reopened.Close()

	list, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3, "samples are seeded once, the new design survives")
	assert.Equal(t, "Daily Driver", list[2].Name)
}

func TestMemoryBackend_DumpOnClose(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "out", "customizer.db")

	b, err := New(config.SQLiteConfig{DumpPath: dump, DumpInterval: time.Hour}, true, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	assert.Equal(t, dump, b.SnapshotPath())

	list, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, b.Close())

	_, err = os.Stat(dump)
	require.NoError(t, err)

	db, err := database.OpenSQLite(dump, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	var count int64
	require.NoError(t, db.Model(&model.Design{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestMemoryBackend_PeriodicDump(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "periodic.db")

	b, err := New(config.SQLiteConfig{DumpPath: dump, DumpInterval: 20 * time.Millisecond}, true, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	defer b.Close()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(dump)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}
