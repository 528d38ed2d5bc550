// Package history persists country observations as an append-only log.
// Rows are never updated or deleted; change detection is a read-only query
// over the log plus one append per cycle.
package history

import (
	"context"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// Store is the persistence interface for the observation log. Per-country
// insertion order must be preserved so "most recent" keeps its meaning; the
// pipeline guarantees a single writer.
type Store interface {
	// Append adds one observation. Appends are the only write.
	Append(ctx context.Context, obs model.Observation) error

	// MostRecent returns the newest observation for a country, or nil
	// when the country has no history.
	MostRecent(ctx context.Context, country string) (*model.Observation, error)

	// MostRecentDiffering returns the newest observation for a country
	// whose classification triple differs from the given one, or nil.
	MostRecentDiffering(ctx context.Context, country string, triple model.StatusTriple) (*model.Observation, error)

	// Latest returns the newest observation for every country.
	Latest(ctx context.Context) ([]model.Observation, error)

	// Recent returns up to limit observations for a country, newest first.
	Recent(ctx context.Context, country string, limit int) ([]model.Observation, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
