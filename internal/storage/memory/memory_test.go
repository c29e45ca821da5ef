package memory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/internal/storage/storagetest"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		b := New(config.MemoryConfig{})
		require.NoError(t, b.Init())
		t.Cleanup(func() { _ = b.Close() })
		return b
	})
}

func TestInit_SeedsSamples(t *testing.T) {
	b := New(config.MemoryConfig{SeedSamples: true})
	require.NoError(t, b.Init())
	// A second Init does not duplicate the seeds.
	require.NoError(t, b.Init())

	list, err := b.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fire Dragon", list[0].Name)
	assert.Equal(t, "Ice Storm", list[1].Name)
	assert.Equal(t, 2, b.Len())

	got, err := b.Get(context.Background(), "sample-2")
	require.NoError(t, err)
	assert.Equal(t, "zentorno", got.BaseModel)
}

func TestCreate_AppendsAfterSamples(t *testing.T) {
	b := New(config.MemoryConfig{SeedSamples: true})
	require.NoError(t, b.Init())

	d := valuation.DefaultDesign("comet")
	require.NoError(t, b.Create(context.Background(), &d))

	list, err := b.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, d.ID, list[2].ID)
}

func TestClose_NoOutputDir(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())
	require.NoError(t, b.Close())
	assert.Empty(t, b.SnapshotPath())
}

func TestClose_WritesSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		compress bool
		suffix   string
	}{
		{"plain", false, ".json"},
		{"gzip", true, ".json.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested")
			b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: tt.compress, SeedSamples: true})
			require.NoError(t, b.Init())

			d := valuation.DefaultDesign("banshee")
			d.Name = "Snapshot Me"
			require.NoError(t, b.Create(context.Background(), &d))
			require.NoError(t, b.Close())

			path := b.SnapshotPath()
			require.NotEmpty(t, path)
			assert.True(t, strings.HasPrefix(filepath.Base(path), "designs_"))
			assert.True(t, strings.HasSuffix(path, tt.suffix))
			_, err := os.Stat(path)
			require.NoError(t, err)

			snap, err := ReadSnapshot(path)
			require.NoError(t, err)
			assert.Equal(t, 3, snap.Count)
			require.Len(t, snap.Designs, 3)
			assert.Equal(t, "sample-1", snap.Designs[0].ID)
			assert.Equal(t, "Snapshot Me", snap.Designs[2].Name)
		})
	}
}

func TestReadSnapshot_Missing(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
