// Package storage defines the design persistence contract shared by all backends.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/modgarage/customizer/pkg/core"
)

var (
	// ErrNotFound is returned when no design has the requested ID.
	ErrNotFound = errors.New("vehicle design not found")
	// ErrMissingID is returned by Update and Delete when the ID is empty.
	ErrMissingID = errors.New("vehicle design ID is required")
)

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// List returns every design in creation order.
	List(ctx context.Context) ([]core.Design, error)
	Get(ctx context.Context, id string) (core.Design, error)

	// Create assigns ID, CreatedAt and UpdatedAt on the passed pointer.
	Create(ctx context.Context, d *core.Design) error
	// Update replaces the stored design with the same ID and refreshes UpdatedAt.
	// A nil CreatedAt is filled from the stored record.
	Update(ctx context.Context, d *core.Design) error
	Delete(ctx context.Context, id string) error
}

// Snapshotter is an optional interface for backends that write a file on Close.
type Snapshotter interface {
	SnapshotPath() string
}

// Now returns the timestamp backends stamp on records.
// Microsecond precision survives a round trip through every supported database.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
