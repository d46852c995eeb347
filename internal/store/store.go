package store

import (
	"context"

	"github.com/easelhq/easel/internal/models"
)

// Store is the record store holding persisted drawings. Consumers should
// depend on this interface rather than the concrete *SQLite type to
// facilitate testing with mocks.
type Store interface {
	// Insert creates a new drawing record and returns it with its
	// generated id and timestamps set.
	Insert(ctx context.Context, name string, sc models.Scene) (models.Drawing, error)
	// Get returns the full record or apperr.ErrNotFound.
	Get(ctx context.Context, id string) (models.Drawing, error)
	// Update replaces the scene payload of an existing record and bumps
	// its updated_at timestamp.
	Update(ctx context.Context, id string, sc models.Scene) error
	// Rename changes the display name of a record.
	Rename(ctx context.Context, id, name string) error
	// List returns summaries for every record, most recently updated
	// first. This ordering is a user-facing contract.
	List(ctx context.Context) ([]models.DrawingSummary, error)
	// Delete removes a record.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Verify *SQLite satisfies Store at compile time.
var _ Store = (*SQLite)(nil)
