// Package store persists cached idea sets and the canonical venue
// records behind narrow interfaces, with a GORM implementation for
// Postgres and an in-memory one for tests and degraded operation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/enhancer"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// ErrNotFound reports that a requested record does not exist
var ErrNotFound = errors.New("record not found")

// IdeaCache holds one generated idea set per (locationKey, dateKey).
// Writes are last-writer-wins; there is no single-flight deduplication
// of concurrent misses.
type IdeaCache interface {
	// Get returns the cached set, or (nil, nil) when absent or expired
	Get(ctx context.Context, locationKey, dateKey string) (*models.IdeaSet, error)
	// Put stores or replaces the set for its (locationKey, dateKey)
	Put(ctx context.Context, set *models.IdeaSet) error
	// Invalidate drops the entry for a key pair if present
	Invalidate(ctx context.Context, locationKey, dateKey string) error
	// SweepExpired deletes entries whose expiry has passed
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// VenueStore is the canonical venue registry keyed by deterministic ID
type VenueStore interface {
	// Upsert inserts the venue or merges its descriptive fields into an
	// existing record; analytics and enhancement fields are untouched
	Upsert(ctx context.Context, v *models.Venue) error
	Get(ctx context.Context, id string) (*models.Venue, error)
	// RecordView atomically bumps view_count and stamps last_viewed
	RecordView(ctx context.Context, id string) error
	// ApplyEnhancement sets the enhancement block exactly once; a venue
	// already enhanced is left as is
	ApplyEnhancement(ctx context.Context, id string, d *enhancer.Details) error
	ByLocation(ctx context.Context, location string, limit int) ([]models.Venue, error)
	ByCuisine(ctx context.Context, cuisine string, limit int) ([]models.Venue, error)
	Search(ctx context.Context, query string, limit int) ([]models.Venue, error)
	Popular(ctx context.Context, limit int) ([]models.Venue, error)
	// Sweep deletes venues last viewed before cutoff with fewer views
	// than threshold
	Sweep(ctx context.Context, cutoff time.Time, viewThreshold int) (int64, error)
}
