package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/geocode"
	"github.com/tvonkoch-eng/D8-sub000/internal/images"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
	"github.com/tvonkoch-eng/D8-sub000/internal/store"
)

type stubResolver struct {
	locationKey string
	err         error
}

func (r *stubResolver) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.locationKey, nil
}

func (r *stubResolver) DateKey(date string) (string, error) {
	if date == "" {
		return "2024-06-01", nil
	}
	return date, nil
}

func (r *stubResolver) ExpiryFor(dateKey string) (time.Time, error) {
	return time.Now().Add(24 * time.Hour), nil
}

type stubGenerator struct {
	ideas []models.Idea
	err   error
	calls int64
}

func (g *stubGenerator) Generate(ctx context.Context, req *models.IdeaRequest, locationKey string) ([]models.Idea, error) {
	atomic.AddInt64(&g.calls, 1)
	if g.err != nil {
		return nil, g.err
	}
	out := make([]models.Idea, len(g.ideas))
	copy(out, g.ideas)
	return out, nil
}

type stubEnricher struct {
	calls int64
}

func (e *stubEnricher) Enrich(ctx context.Context, req images.Request) string {
	atomic.AddInt64(&e.calls, 1)
	return "https://img.example/" + req.Name + ".jpg"
}

func liveIdeas(n int) []models.Idea {
	ideas := make([]models.Idea, n)
	for i := range ideas {
		ideas[i] = models.Idea{
			Name:        fmt.Sprintf("Spot %02d", i),
			Address:     fmt.Sprintf("%d Main St, Portland, OR", i+1),
			Latitude:    45.5 + float64(i)*0.001,
			Longitude:   -122.6,
			CuisineType: "italian",
			Category:    models.CategoryRestaurant,
			Rating:      4.0,
			Source:      models.SourceLive,
		}
	}
	return ideas
}

func newTestService(gen Generator) (*IdeasService, *store.MemoryIdeaCache, *store.MemoryVenueStore) {
	cache := store.NewMemoryIdeaCache()
	venues := store.NewMemoryVenueStore()
	svc := NewIdeasService(&stubResolver{locationKey: "Portland, Oregon"}, cache, venues, gen, &stubEnricher{})
	return svc, cache, venues
}

// TestPipelineColdCache a cold cache generates, enriches in order,
// persists venues and writes the cache
func TestPipelineColdCache(t *testing.T) {
	gen := &stubGenerator{ideas: liveIdeas(8)}
	svc, cache, venues := newTestService(gen)

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01", Latitude: 45.5, Longitude: -122.6}
	resp, err := svc.GetIdeas(context.Background(), req)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if resp.Cached {
		t.Error("cold cache response must not be marked cached")
	}
	if resp.TotalFound != 8 || len(resp.Recommendations) != 8 {
		t.Fatalf("expected 8 ideas, got total=%d page=%d", resp.TotalFound, len(resp.Recommendations))
	}
	if resp.LocationKey != "Portland, Oregon" {
		t.Errorf("unexpected location key: %s", resp.LocationKey)
	}

	// Enrichment annotates without reordering
	for i, idea := range resp.Recommendations {
		if idea.Name != fmt.Sprintf("Spot %02d", i) {
			t.Fatalf("order not preserved at %d: %s", i, idea.Name)
		}
		if idea.ImageURL != "https://img.example/"+idea.Name+".jpg" {
			t.Errorf("idea %d not enriched: %q", i, idea.ImageURL)
		}
	}

	// Venues persisted under deterministic IDs
	id := models.VenueID(resp.Recommendations[0].Address, resp.Recommendations[0].Latitude, resp.Recommendations[0].Longitude)
	if _, err := venues.Get(context.Background(), id); err != nil {
		t.Errorf("venue not persisted: %v", err)
	}

	// Cache written
	set, _ := cache.Get(context.Background(), "Portland, Oregon", "2024-06-01")
	if set == nil {
		t.Fatal("idea set not cached")
	}
}

// TestPipelineCacheHit the second call serves from cache with zero
// recommender calls
func TestPipelineCacheHit(t *testing.T) {
	gen := &stubGenerator{ideas: liveIdeas(6)}
	svc, _, _ := newTestService(gen)

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01", Latitude: 45.5, Longitude: -122.6}
	if _, err := svc.GetIdeas(context.Background(), req); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	resp, err := svc.GetIdeas(context.Background(), req)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !resp.Cached {
		t.Error("second call should be served from cache")
	}
	if gen.calls != 1 {
		t.Errorf("expected 1 generator call, got %d", gen.calls)
	}
	if len(resp.Recommendations) != 6 {
		t.Errorf("cached page should have 6 ideas, got %d", len(resp.Recommendations))
	}
}

// TestPipelineFallback a recommender failure yields synthesized ideas
// that are served but never cached
func TestPipelineFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model down")}
	svc, cache, _ := newTestService(gen)

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01", Latitude: 45.5, Longitude: -122.6}
	resp, err := svc.GetIdeas(context.Background(), req)
	if err != nil {
		t.Fatalf("pipeline should recover from recommender failure: %v", err)
	}

	if len(resp.Recommendations) < 4 {
		t.Fatalf("expected at least 4 synthesized ideas, got %d", len(resp.Recommendations))
	}
	for i, idea := range resp.Recommendations {
		if idea.Source != models.SourceFallback {
			t.Errorf("idea %d should be fallback-sourced, got %s", i, idea.Source)
		}
	}

	if set, _ := cache.Get(context.Background(), "Portland, Oregon", "2024-06-01"); set != nil {
		t.Error("synthesized sets must not be cached")
	}

	// The next call retries the recommender
	svc.GetIdeas(context.Background(), req)
	if gen.calls != 2 {
		t.Errorf("expected a retry on the next call, got %d generator calls", gen.calls)
	}
}

// TestPipelineLocationUnavailable resolver exhaustion is a hard error
// with no cache write and no generation
func TestPipelineLocationUnavailable(t *testing.T) {
	gen := &stubGenerator{ideas: liveIdeas(6)}
	cache := store.NewMemoryIdeaCache()
	svc := NewIdeasService(&stubResolver{err: geocode.ErrLocationUnavailable}, cache, store.NewMemoryVenueStore(), gen, &stubEnricher{})

	req := &models.IdeaRequest{DateType: "meal", Latitude: 0, Longitude: 0}
	_, err := svc.GetIdeas(context.Background(), req)
	if !errors.Is(err, geocode.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generation must not run without a resolved location")
	}
}

// TestPipelineRefresh the refresh flag bypasses the cache read and
// overwrites the entry
func TestPipelineRefresh(t *testing.T) {
	gen := &stubGenerator{ideas: liveIdeas(5)}
	svc, _, _ := newTestService(gen)

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01", Latitude: 45.5, Longitude: -122.6}
	svc.GetIdeas(context.Background(), req)

	resp, err := svc.RefreshIdeas(context.Background(), req)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if resp.Cached {
		t.Error("refresh must not serve from cache")
	}
	if gen.calls != 2 {
		t.Errorf("expected 2 generator calls, got %d", gen.calls)
	}
}

func TestPipelinePagination(t *testing.T) {
	gen := &stubGenerator{ideas: liveIdeas(13)}
	svc, _, _ := newTestService(gen)

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01", Latitude: 45.5, Longitude: -122.6, Page: 2}
	resp, err := svc.GetIdeas(context.Background(), req)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if resp.TotalFound != 13 {
		t.Errorf("expected total 13, got %d", resp.TotalFound)
	}
	if len(resp.Recommendations) != 3 {
		t.Fatalf("page 2 of 13 should have 3 ideas, got %d", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Name != "Spot 10" {
		t.Errorf("page 2 should start at the 11th idea, got %s", resp.Recommendations[0].Name)
	}

	// Out-of-range pages are empty but report the full total
	req.Page = 5
	resp, _ = svc.RefreshIdeas(context.Background(), req)
	if len(resp.Recommendations) != 0 || resp.TotalFound != 13 {
		t.Errorf("out-of-range page: got %d ideas, total %d", len(resp.Recommendations), resp.TotalFound)
	}
}

// failingCache errors on every write
type failingCache struct{ store.IdeaCache }

func (f *failingCache) Put(ctx context.Context, set *models.IdeaSet) error {
	return errors.New("store outage")
}

// TestPipelineCacheWriteFailure a cache write failure degrades to "no
// caching", not "no results"
func TestPipelineCacheWriteFailure(t *testing.T) {
	gen := &stubGenerator{ideas: liveIdeas(6)}
	cache := &failingCache{IdeaCache: store.NewMemoryIdeaCache()}
	svc := NewIdeasService(&stubResolver{locationKey: "Portland, Oregon"}, cache, store.NewMemoryVenueStore(), gen, &stubEnricher{})

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01", Latitude: 45.5, Longitude: -122.6}
	resp, err := svc.GetIdeas(context.Background(), req)
	if err != nil {
		t.Fatalf("pipeline should survive a cache write failure: %v", err)
	}
	if len(resp.Recommendations) != 6 {
		t.Errorf("expected the full result despite the outage, got %d", len(resp.Recommendations))
	}
}
