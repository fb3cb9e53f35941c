package services

import (
	"context"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/enhancer"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
	"github.com/tvonkoch-eng/D8-sub000/internal/store"
)

// DetailSource fetches richer venue details
type DetailSource interface {
	Enhance(ctx context.Context, name, address, category string) (*enhancer.Details, error)
}

// VenueService is the venue analytics and query surface
type VenueService struct {
	store     store.VenueStore
	details   DetailSource
	retention time.Duration
	threshold int
}

// NewVenueService wires the venue surface
func NewVenueService(st store.VenueStore, details DetailSource, sweep config.SweepConfig) *VenueService {
	return &VenueService{
		store:     st,
		details:   details,
		retention: time.Duration(sweep.VenueRetentionDays) * 24 * time.Hour,
		threshold: sweep.VenueViewThreshold,
	}
}

func (s *VenueService) Get(ctx context.Context, id string) (*models.Venue, error) {
	return s.store.Get(ctx, id)
}

// RecordView bumps the venue's view analytics
func (s *VenueService) RecordView(ctx context.Context, id string) error {
	return s.store.RecordView(ctx, id)
}

// Enhance fetches and applies richer details for a venue. Already
// enhanced venues return immediately; a detail-source failure leaves
// the venue unenhanced and retryable.
func (s *VenueService) Enhance(ctx context.Context, id string) error {
	log := logger.GetLogger("venues")

	v, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if v.HasEnhancedDetails {
		return nil
	}

	d, err := s.details.Enhance(ctx, v.Name, v.Address, v.Category)
	if err != nil {
		log.Warnf("enhancement failed for %q: %v", v.Name, err)
		return err
	}
	return s.store.ApplyEnhancement(ctx, id, d)
}

func (s *VenueService) ByLocation(ctx context.Context, location string, limit int) ([]models.Venue, error) {
	return s.store.ByLocation(ctx, location, clampLimit(limit))
}

func (s *VenueService) ByCuisine(ctx context.Context, cuisine string, limit int) ([]models.Venue, error) {
	return s.store.ByCuisine(ctx, cuisine, clampLimit(limit))
}

func (s *VenueService) Search(ctx context.Context, query string, limit int) ([]models.Venue, error) {
	return s.store.Search(ctx, query, clampLimit(limit))
}

func (s *VenueService) Popular(ctx context.Context, limit int) ([]models.Venue, error) {
	return s.store.Popular(ctx, clampLimit(limit))
}

// Sweep deletes venues below the view threshold that nobody has looked
// at within the retention window
func (s *VenueService) Sweep(ctx context.Context) (int64, error) {
	log := logger.GetLogger("venues")

	cutoff := time.Now().Add(-s.retention)
	n, err := s.store.Sweep(ctx, cutoff, s.threshold)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Infof("swept %d low-traffic venues (cutoff %s)", n, cutoff.Format("2006-01-02"))
	}
	return n, nil
}

func clampLimit(limit int) int {
	if limit < 1 || limit > 50 {
		return 20
	}
	return limit
}
