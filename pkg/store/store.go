// Package store persists generated tilings as runs.
//
// A [Run] wraps a [tiling.Tiling] with an id and a creation time. Backends
// implement [Store]:
//
//   - [MemoryStore]: in-process map, used by tests and `--store none`
//   - [FileStore]: one JSON file per run under a directory
//   - sqlite.Store: modernc.org/sqlite with embedded migrations
//   - mongo.Store: a MongoDB collection
//
// All backends return a RUN_NOT_FOUND error from Get and Delete when the id
// is unknown, and an INVALID_RUN_ID error when the id is not a UUID.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// Run is a stored tiling.
type Run struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Tiling    *tiling.Tiling `json:"tiling" bson:"tiling"`
}

// NewRun wraps t in a Run with a fresh UUID.
func NewRun(t *tiling.Tiling, name string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Tiling:    t,
	}
}

// ListOptions filters [Store.List].
type ListOptions struct {
	// Limit caps the number of runs returned. Zero means DefaultListLimit.
	Limit int
	// Strategy, when set, keeps only runs generated with it.
	Strategy tiling.Strategy
}

// DefaultListLimit is the page size when ListOptions.Limit is zero.
const DefaultListLimit = 50

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store is the interface for run storage backends.
type Store interface {
	// Save inserts or replaces a run.
	Save(ctx context.Context, run *Run) error

	// Get returns the run with the given id.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns runs newest first.
	List(ctx context.Context, opts ListOptions) ([]*Run, error)

	// Delete removes a run.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Validate checks a run before it is saved.
func Validate(run *Run) error {
	if run == nil || run.Tiling == nil {
		return errors.New(errors.ErrCodeInvalidInput, "run has no tiling")
	}
	return errors.ValidateRunID(run.ID)
}

// NotFound returns the error backends use for unknown ids.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
}
