package main

import (
	"fmt"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/internal/storage/memory"
	pgstorage "github.com/modgarage/customizer/internal/storage/postgres"
	sqlitestorage "github.com/modgarage/customizer/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// createStorageBackend builds the backend selected by storage.type.
// Unknown types fall back to memory.
func createStorageBackend(storageCfg config.StorageConfig, log zerolog.Logger) (storage.Backend, error) {
	seed := storageCfg.Memory.SeedSamples

	switch storageCfg.Type {
	case "postgres":
		backend, err := pgstorage.New(storageCfg.DB, seed, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres backend: %w", err)
		}
		Logger.Info("Postgres storage backend initialized", "host", storageCfg.DB.Host, "database", storageCfg.DB.Database)
		return backend, nil

	case "sqlite":
		backend, err := sqlitestorage.New(storageCfg.SQLite, seed, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		Logger.Info("SQLite storage backend initialized", "path", storageCfg.SQLite.Path)
		return backend, nil

	case "", "memory":
		Logger.Info("Memory storage backend initialized")
		return memory.New(storageCfg.Memory), nil

	default:
		Logger.Warn("Unknown storage type, using memory", "type", storageCfg.Type)
		return memory.New(storageCfg.Memory), nil
	}
}
