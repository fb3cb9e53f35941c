package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/enhancer"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// MemoryIdeaCache is a map-backed IdeaCache for tests and for running
// without a database
type MemoryIdeaCache struct {
	mu   sync.RWMutex
	sets map[string]models.IdeaSet
}

func NewMemoryIdeaCache() *MemoryIdeaCache {
	return &MemoryIdeaCache{sets: make(map[string]models.IdeaSet)}
}

func cacheKey(locationKey, dateKey string) string {
	return locationKey + "|" + dateKey
}

func (c *MemoryIdeaCache) Get(ctx context.Context, locationKey, dateKey string) (*models.IdeaSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(locationKey, dateKey)
	set, ok := c.sets[key]
	if !ok {
		return nil, nil
	}
	if !set.ExpiresAt.After(time.Now()) {
		// Stale entries are dropped on read, not just by the sweeper
		delete(c.sets, key)
		return nil, nil
	}
	out := set
	return &out, nil
}

func (c *MemoryIdeaCache) Put(ctx context.Context, set *models.IdeaSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[cacheKey(set.LocationKey, set.DateKey)] = *set
	return nil
}

func (c *MemoryIdeaCache) Invalidate(ctx context.Context, locationKey, dateKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, cacheKey(locationKey, dateKey))
	return nil
}

func (c *MemoryIdeaCache) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for k, set := range c.sets {
		if !set.ExpiresAt.After(now) {
			delete(c.sets, k)
			n++
		}
	}
	return n, nil
}

// MemoryVenueStore is a map-backed VenueStore with the same merge and
// one-way enhancement semantics as the Postgres implementation
type MemoryVenueStore struct {
	mu     sync.RWMutex
	venues map[string]models.Venue
}

func NewMemoryVenueStore() *MemoryVenueStore {
	return &MemoryVenueStore{venues: make(map[string]models.Venue)}
}

func (s *MemoryVenueStore) Upsert(ctx context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	existing, ok := s.venues[v.ID]
	if !ok {
		nv := *v
		if nv.CreatedAt.IsZero() {
			nv.CreatedAt = now
		}
		nv.LastUpdated = now
		s.venues[v.ID] = nv
		return nil
	}

	// Merge descriptive fields only; analytics and enhancement survive
	existing.Name = v.Name
	existing.Description = v.Description
	existing.Location = v.Location
	existing.Address = v.Address
	existing.Lat = v.Lat
	existing.Lng = v.Lng
	existing.CuisineType = v.CuisineType
	existing.Category = v.Category
	existing.PriceLevel = v.PriceLevel
	existing.Rating = v.Rating
	existing.EstimatedCost = v.EstimatedCost
	existing.BestTime = v.BestTime
	existing.OpenHours = v.OpenHours
	existing.ImageURL = v.ImageURL
	existing.WebsiteURL = v.WebsiteURL
	existing.MenuURL = v.MenuURL
	existing.LastUpdated = now
	s.venues[v.ID] = existing
	return nil
}

// Replace overwrites a record wholesale, bypassing the upsert merge.
// Used for seeding fixtures.
func (s *MemoryVenueStore) Replace(v *models.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[v.ID] = *v
}

func (s *MemoryVenueStore) Get(ctx context.Context, id string) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := v
	return &out, nil
}

func (s *MemoryVenueStore) RecordView(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	v.ViewCount++
	v.LastViewed = &now
	s.venues[id] = v
	return nil
}

func (s *MemoryVenueStore) ApplyEnhancement(ctx context.Context, id string, d *enhancer.Details) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok || v.HasEnhancedDetails {
		return nil
	}
	v.EnhancedDescription = d.EnhancedDescription
	v.OperatingHours = d.OperatingHours
	v.AdditionalInfo = d.AdditionalInfo
	v.HasEnhancedDetails = true
	v.LastUpdated = time.Now()
	s.venues[id] = v
	return nil
}

func (s *MemoryVenueStore) ByLocation(ctx context.Context, location string, limit int) ([]models.Venue, error) {
	return s.filter(limit, byRating, func(v *models.Venue) bool {
		return strings.Contains(strings.ToLower(v.Location), strings.ToLower(location))
	}), nil
}

func (s *MemoryVenueStore) ByCuisine(ctx context.Context, cuisine string, limit int) ([]models.Venue, error) {
	return s.filter(limit, byRating, func(v *models.Venue) bool {
		return v.CuisineType == cuisine
	}), nil
}

func (s *MemoryVenueStore) Search(ctx context.Context, query string, limit int) ([]models.Venue, error) {
	q := strings.ToLower(query)
	return s.filter(limit, byRating, func(v *models.Venue) bool {
		return strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Description), q)
	}), nil
}

func (s *MemoryVenueStore) Popular(ctx context.Context, limit int) ([]models.Venue, error) {
	return s.filter(limit, byViews, func(v *models.Venue) bool { return true }), nil
}

func (s *MemoryVenueStore) Sweep(ctx context.Context, cutoff time.Time, viewThreshold int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, v := range s.venues {
		stale := v.LastViewed == nil || v.LastViewed.Before(cutoff)
		if int(v.ViewCount) < viewThreshold && stale && v.CreatedAt.Before(cutoff) {
			delete(s.venues, id)
			n++
		}
	}
	return n, nil
}

func byRating(a, b *models.Venue) bool { return a.Rating > b.Rating }
func byViews(a, b *models.Venue) bool  { return a.ViewCount > b.ViewCount }

func (s *MemoryVenueStore) filter(limit int, less func(a, b *models.Venue) bool, match func(*models.Venue) bool) []models.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Venue, 0)
	for _, v := range s.venues {
		v := v
		if match(&v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
