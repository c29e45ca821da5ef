// Package memory implements storage.Backend with an in-process map.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/pkg/core"
)

// Compile-time interface checks
var (
	_ storage.Backend     = (*Backend)(nil)
	_ storage.Snapshotter = (*Backend)(nil)
)

// Backend keeps designs in memory and optionally writes a JSON snapshot on Close.
type Backend struct {
	cfg config.MemoryConfig

	designs map[string]core.Design
	order   []string // IDs in creation order

	lastSnapshotPath string
	mu               sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:     cfg,
		designs: make(map[string]core.Design),
	}
}

// Init seeds the sample designs when configured.
func (b *Backend) Init() error {
	if !b.cfg.SeedSamples {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, d := range storage.SampleDesigns() {
		if _, ok := b.designs[d.ID]; ok {
			continue
		}
		b.designs[d.ID] = d
		b.order = append(b.order, d.ID)
	}
	return nil
}

// Close writes a snapshot when an output directory is configured.
func (b *Backend) Close() error {
	if b.cfg.OutputDir == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.exportJSON()
}

// SnapshotPath returns the file written by the last Close, or "".
func (b *Backend) SnapshotPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastSnapshotPath
}

func (b *Backend) List(_ context.Context) ([]core.Design, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Design, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.designs[id].Clone())
	}
	return out, nil
}

func (b *Backend) Get(_ context.Context, id string) (core.Design, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	d, ok := b.designs[id]
	if !ok {
		return core.Design{}, fmt.Errorf("design %s: %w", id, storage.ErrNotFound)
	}
	return d.Clone(), nil
}

func (b *Backend) Create(_ context.Context, d *core.Design) error {
	now := storage.Now()
	d.ID = uuid.NewString()
	d.CreatedAt = &now
	d.UpdatedAt = &now

	b.mu.Lock()
	defer b.mu.Unlock()

	b.designs[d.ID] = d.Clone()
	b.order = append(b.order, d.ID)
	return nil
}

func (b *Backend) Update(_ context.Context, d *core.Design) error {
	if d.ID == "" {
		return storage.ErrMissingID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.designs[d.ID]
	if !ok {
		return fmt.Errorf("design %s: %w", d.ID, storage.ErrNotFound)
	}

	now := storage.Now()
	if d.CreatedAt == nil {
		d.CreatedAt = existing.Clone().CreatedAt
	}
	d.UpdatedAt = &now

	b.designs[d.ID] = d.Clone()
	return nil
}

func (b *Backend) Delete(_ context.Context, id string) error {
	if id == "" {
		return storage.ErrMissingID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.designs[id]; !ok {
		return fmt.Errorf("design %s: %w", id, storage.ErrNotFound)
	}
	delete(b.designs, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored designs.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.designs)
}
