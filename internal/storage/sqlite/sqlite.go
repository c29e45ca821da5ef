// Package sqlitestorage is the SQLite storage backend.
// With a file path it writes straight to disk. Without one it runs in memory and
// periodically dumps a snapshot via VACUUM INTO.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/database"
	"github.com/modgarage/customizer/internal/storage"
	gormstorage "github.com/modgarage/customizer/internal/storage/gorm"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Compile-time interface checks
var (
	_ storage.Backend     = (*Backend)(nil)
	_ storage.Snapshotter = (*Backend)(nil)
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db  *gorm.DB
	cfg config.SQLiteConfig
	log zerolog.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	loopDone chan struct{}
}

// New opens the database described by cfg.
func New(cfg config.SQLiteConfig, seedSamples bool, log zerolog.Logger) (*Backend, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.OpenSQLite(cfg.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:          db,
			Logger:      log,
			SeedSamples: seedSamples,
		}),
		db:       db,
		cfg:      cfg,
		log:      log,
		stopChan: make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

func (b *Backend) inMemory() bool {
	return b.cfg.Path == ""
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.inMemory() && b.cfg.DumpPath != "" && b.cfg.DumpInterval > 0 {
		if err := os.MkdirAll(filepath.Dir(b.cfg.DumpPath), 0755); err != nil {
			return fmt.Errorf("failed to create dump directory: %w", err)
		}
		go b.dumpLoop()
	} else {
		close(b.loopDone)
	}

	return nil
}

// Close stops the dump goroutine, writes a final dump for an in-memory database,
// and closes the connection.
func (b *Backend) Close() error {
	b.stopOnce.Do(func() { close(b.stopChan) })
	<-b.loopDone

	if b.inMemory() && b.cfg.DumpPath != "" {
		if err := b.Dump(); err != nil {
			b.log.Error().Err(err).Msg("Final dump failed")
		}
	}
	return b.Backend.Close()
}

// Dump writes the current database to the configured dump path.
func (b *Backend) Dump() error {
	d, err := database.DumpSQLite(b.db, b.cfg.DumpPath)
	if err != nil {
		return err
	}
	b.log.Debug().Dur("duration", d).Str("path", b.cfg.DumpPath).Msg("Dumped memory DB to disk")
	return nil
}

// SnapshotPath returns the dump file for an in-memory database, or the database file itself.
func (b *Backend) SnapshotPath() string {
	if b.inMemory() {
		return b.cfg.DumpPath
	}
	return b.cfg.Path
}

// dumpLoop periodically dumps the in-memory database to disk.
// VACUUM INTO creates a point-in-time snapshot, so writers are not paused.
func (b *Backend) dumpLoop() {
	defer close(b.loopDone)

	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error().Err(err).Msg("Error dumping to disk")
			}
		}
	}
}
