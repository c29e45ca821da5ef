package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/modgarage/customizer/pkg/core"
)

// Snapshot is the root JSON structure written on Close.
type Snapshot struct {
	ExportedAt time.Time     `json:"exportedAt"`
	Count      int           `json:"count"`
	Designs    []core.Design `json:"designs"`
}

// exportJSON writes every design to outputDir. Callers hold b.mu.
func (b *Backend) exportJSON() error {
	snap := b.buildSnapshot()

	filename := fmt.Sprintf("designs_%s.json", snap.ExportedAt.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeSnapshot(outputPath, snap, b.cfg.CompressOutput); err != nil {
		return err
	}

	b.lastSnapshotPath = outputPath
	return nil
}

func (b *Backend) buildSnapshot() Snapshot {
	snap := Snapshot{
		ExportedAt: time.Now().UTC(),
		Designs:    make([]core.Design, 0, len(b.order)),
	}
	for _, id := range b.order {
		snap.Designs = append(snap.Designs, b.designs[id].Clone())
	}
	snap.Count = len(snap.Designs)
	return snap
}

func writeSnapshot(path string, snap Snapshot, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	if compress {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}

	if err := json.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by Close, gzipped or not.
func ReadSnapshot(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to open gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
