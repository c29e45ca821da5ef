// Package postgres is the PostgreSQL storage backend.
package postgres

import (
	"fmt"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/database"
	"github.com/modgarage/customizer/internal/storage"
	gormstorage "github.com/modgarage/customizer/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

// Backend wraps the GORM backend with a PostgreSQL connection.
type Backend struct {
	*gormstorage.Backend
}

// New connects to the database described by cfg.
func New(cfg config.DBConfig, seedSamples bool, log zerolog.Logger) (*Backend, error) {
	db, err := database.OpenPostgres(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres at %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:          db,
			Logger:      log,
			SeedSamples: seedSamples,
		}),
	}, nil
}
