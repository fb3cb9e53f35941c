// Package services composes the domain components into the idea
// pipeline and the venue surface.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/images"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
	"github.com/tvonkoch-eng/D8-sub000/internal/recommender"
	"github.com/tvonkoch-eng/D8-sub000/internal/store"
	"github.com/tvonkoch-eng/D8-sub000/internal/telemetry"
)

const (
	pageSize       = 10
	defaultWorkers = 4
)

// Resolver is the location surface the pipeline needs
type Resolver interface {
	Resolve(ctx context.Context, lat, lng float64) (string, error)
	DateKey(date string) (string, error)
	ExpiryFor(dateKey string) (time.Time, error)
}

// Generator produces ideas for a request in a resolved location
type Generator interface {
	Generate(ctx context.Context, req *models.IdeaRequest, locationKey string) ([]models.Idea, error)
}

// Enricher finds a photo URL for a venue, empty on a miss
type Enricher interface {
	Enrich(ctx context.Context, req images.Request) string
}

// IdeasService runs the recommendation pipeline: resolve, check the
// cache, generate (or synthesize), enrich, persist, paginate.
type IdeasService struct {
	resolver  Resolver
	cache     store.IdeaCache
	venues    store.VenueStore
	generator Generator
	enricher  Enricher
	workers   int
}

// NewIdeasService wires the pipeline
func NewIdeasService(resolver Resolver, cache store.IdeaCache, venues store.VenueStore, generator Generator, enricher Enricher) *IdeasService {
	return &IdeasService{
		resolver:  resolver,
		cache:     cache,
		venues:    venues,
		generator: generator,
		enricher:  enricher,
		workers:   defaultWorkers,
	}
}

// GetIdeas serves one page of ideas for the request's day and location,
// generating and caching a fresh set on a cache miss
func (s *IdeasService) GetIdeas(ctx context.Context, req *models.IdeaRequest) (*models.IdeaResponse, error) {
	return s.run(ctx, req, false)
}

// RefreshIdeas bypasses the cache read and overwrites the cached set
func (s *IdeasService) RefreshIdeas(ctx context.Context, req *models.IdeaRequest) (*models.IdeaResponse, error) {
	return s.run(ctx, req, true)
}

func (s *IdeasService) run(ctx context.Context, req *models.IdeaRequest, refresh bool) (*models.IdeaResponse, error) {
	log := logger.GetLogger("pipeline")
	start := time.Now()

	ctx, span := telemetry.Tracer.Start(ctx, "ideas.pipeline")
	defer span.End()
	telemetry.PipelineRequests.Add(ctx, 1)

	locationKey, err := s.resolver.Resolve(ctx, req.Latitude, req.Longitude)
	if err != nil {
		// Never substitute a default location
		return nil, fmt.Errorf("resolving location: %w", err)
	}

	dateKey, err := s.resolver.DateKey(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid request date: %w", err)
	}

	if !refresh {
		if resp := s.fromCache(ctx, req, locationKey, dateKey, start); resp != nil {
			return resp, nil
		}
	}

	ideas, err := s.generator.Generate(ctx, req, locationKey)
	live := err == nil
	if err != nil {
		log.Warnf("recommender failed for %s/%s, synthesizing locally: %v", locationKey, dateKey, err)
		telemetry.FallbackSets.Add(ctx, 1)
		ideas = recommender.Synthesize(locationKey, req.Latitude, req.Longitude)
	}

	s.enrich(ctx, ideas, locationKey)
	s.persistVenues(ctx, ideas)

	// Synthesized sets are never cached: the next request retries the
	// real recommender
	if live {
		s.putCache(ctx, ideas, locationKey, dateKey)
	}

	resp := paginate(ideas, req.Page)
	resp.QueryUsed = queryDescription(req, resp.TotalFound > 0 && ideas[0].Source == models.SourceFallback)
	resp.ProcessingTime = time.Since(start).Seconds()
	resp.LocationKey = locationKey
	return resp, nil
}

// fromCache returns a response when a live cached set exists, nil otherwise.
// Cache read errors degrade to a miss.
func (s *IdeasService) fromCache(ctx context.Context, req *models.IdeaRequest, locationKey, dateKey string, start time.Time) *models.IdeaResponse {
	log := logger.GetLogger("pipeline")

	set, err := s.cache.Get(ctx, locationKey, dateKey)
	if err != nil {
		log.Warnf("cache read failed for %s/%s: %v", locationKey, dateKey, err)
		return nil
	}
	if set == nil {
		return nil
	}

	var ideas []models.Idea
	if err := json.Unmarshal(set.Ideas, &ideas); err != nil {
		log.Errorf("corrupt cached set for %s/%s: %v", locationKey, dateKey, err)
		return nil
	}

	telemetry.CacheHits.Add(ctx, 1)
	log.Infof("[idea_cache] HIT %s/%s (%d ideas)", locationKey, dateKey, len(ideas))

	resp := paginate(ideas, req.Page)
	resp.QueryUsed = queryDescription(req, false)
	resp.ProcessingTime = time.Since(start).Seconds()
	resp.LocationKey = locationKey
	resp.Cached = true
	return resp
}

// enrich attaches photo URLs with a bounded worker pool. Workers write
// to distinct indexes, so the recommender's ordering is preserved.
func (s *IdeasService) enrich(ctx context.Context, ideas []models.Idea, locationKey string) {
	log := logger.GetLogger("pipeline")

	workers := s.workers
	if workers > len(ideas) {
		workers = len(ideas)
	}
	if workers < 1 {
		return
	}

	var enriched int64
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				url := s.enricher.Enrich(ctx, images.Request{
					Name:     ideas[i].Name,
					Category: ideas[i].CuisineType,
					Location: locationKey,
					Lat:      ideas[i].Latitude,
					Lng:      ideas[i].Longitude,
				})
				if url != "" {
					ideas[i].ImageURL = url
					atomic.AddInt64(&enriched, 1)
				}
			}
		}()
	}
	for i := range ideas {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	telemetry.ImagesEnriched.Add(ctx, enriched)
	log.Infof("enriched %d/%d ideas with photos", enriched, len(ideas))
}

// persistVenues upserts every addressable idea into the venue registry.
// Store failures are logged, never surfaced.
func (s *IdeasService) persistVenues(ctx context.Context, ideas []models.Idea) {
	log := logger.GetLogger("pipeline")

	for i := range ideas {
		if ideas[i].Address == "" {
			continue
		}
		v := venueFromIdea(&ideas[i])
		if err := s.venues.Upsert(ctx, v); err != nil {
			log.Warnf("venue upsert failed for %q: %v", v.Name, err)
		}
	}
}

func (s *IdeasService) putCache(ctx context.Context, ideas []models.Idea, locationKey, dateKey string) {
	log := logger.GetLogger("pipeline")

	expiry, err := s.resolver.ExpiryFor(dateKey)
	if err != nil {
		log.Errorf("cannot compute expiry for %s: %v", dateKey, err)
		return
	}
	payload, err := json.Marshal(ideas)
	if err != nil {
		log.Errorf("cannot marshal ideas for %s/%s: %v", locationKey, dateKey, err)
		return
	}

	err = s.cache.Put(ctx, &models.IdeaSet{
		LocationKey: locationKey,
		DateKey:     dateKey,
		Ideas:       payload,
		GeneratedAt: time.Now(),
		ExpiresAt:   expiry,
	})
	if err != nil {
		// A transient store outage degrades to "no caching"
		log.Warnf("cache write failed for %s/%s: %v", locationKey, dateKey, err)
	}
}

// venueFromIdea maps an idea onto the canonical venue record with its
// deterministic ID
func venueFromIdea(idea *models.Idea) *models.Venue {
	return &models.Venue{
		ID:            models.VenueID(idea.Address, idea.Latitude, idea.Longitude),
		Name:          idea.Name,
		Description:   idea.Description,
		Location:      idea.Location,
		Address:       idea.Address,
		Lat:           idea.Latitude,
		Lng:           idea.Longitude,
		CuisineType:   idea.CuisineType,
		Category:      idea.Category,
		PriceLevel:    idea.PriceLevel,
		Rating:        idea.Rating,
		EstimatedCost: idea.EstimatedCost,
		BestTime:      idea.BestTime,
		OpenHours:     idea.OpenHours,
		ImageURL:      idea.ImageURL,
		WebsiteURL:    idea.WebsiteURL,
		MenuURL:       idea.MenuURL,
	}
}

func paginate(ideas []models.Idea, page int) *models.IdeaResponse {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(ideas) {
		start = len(ideas)
	}
	if end > len(ideas) {
		end = len(ideas)
	}
	return &models.IdeaResponse{
		Recommendations: ideas[start:end],
		TotalFound:      len(ideas),
	}
}

func queryDescription(req *models.IdeaRequest, fallback bool) string {
	desc := req.DateType
	switch {
	case req.DateType == "meal" && len(req.MealTimes) > 0:
		desc += " " + req.MealTimes[0]
	case req.DateType == "activity" && len(req.ActivityTypes) > 0:
		desc += " " + req.ActivityTypes[0]
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	if fallback {
		return fmt.Sprintf("Fallback recommendations for %s (page %d)", desc, page)
	}
	return fmt.Sprintf("Generated recommendations for %s (page %d)", desc, page)
}
