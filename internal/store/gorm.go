package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tvonkoch-eng/D8-sub000/internal/enhancer"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// GormIdeaCache is the Postgres-backed idea cache
type GormIdeaCache struct {
	db *gorm.DB
}

func NewGormIdeaCache(db *gorm.DB) *GormIdeaCache {
	return &GormIdeaCache{db: db}
}

func (c *GormIdeaCache) Get(ctx context.Context, locationKey, dateKey string) (*models.IdeaSet, error) {
	var set models.IdeaSet
	err := c.db.WithContext(ctx).
		Where("location_key = ? AND date_key = ?", locationKey, dateKey).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !set.ExpiresAt.After(time.Now()) {
		// Stale entries are dropped on read, not just by the sweeper
		c.db.WithContext(ctx).
			Where("location_key = ? AND date_key = ?", locationKey, dateKey).
			Delete(&models.IdeaSet{})
		return nil, nil
	}
	return &set, nil
}

func (c *GormIdeaCache) Put(ctx context.Context, set *models.IdeaSet) error {
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "location_key"}, {Name: "date_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"ideas", "generated_at", "expires_at"}),
		}).
		Create(set).Error
}

func (c *GormIdeaCache) Invalidate(ctx context.Context, locationKey, dateKey string) error {
	return c.db.WithContext(ctx).
		Where("location_key = ? AND date_key = ?", locationKey, dateKey).
		Delete(&models.IdeaSet{}).Error
}

func (c *GormIdeaCache) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res := c.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.IdeaSet{})
	return res.RowsAffected, res.Error
}

// GormVenueStore is the Postgres-backed venue registry
type GormVenueStore struct {
	db *gorm.DB
}

func NewGormVenueStore(db *gorm.DB) *GormVenueStore {
	return &GormVenueStore{db: db}
}

// descriptive columns refreshed on upsert; analytics and enhancement
// columns are deliberately absent so concurrent RecordView and
// ApplyEnhancement writes are never clobbered
var venueUpsertColumns = []string{
	"name", "description", "location", "address", "lat", "lng",
	"cuisine_type", "category", "price_level", "rating",
	"estimated_cost", "best_time", "open_hours",
	"img_url", "website_url", "menu_url", "last_updated",
}

func (s *GormVenueStore) Upsert(ctx context.Context, v *models.Venue) error {
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.LastUpdated = now

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(venueUpsertColumns),
		}).
		Create(v).Error
}

func (s *GormVenueStore) Get(ctx context.Context, id string) (*models.Venue, error) {
	var v models.Venue
	err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *GormVenueStore) RecordView(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Venue{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"view_count":  gorm.Expr("view_count + 1"),
			"last_viewed": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormVenueStore) ApplyEnhancement(ctx context.Context, id string, d *enhancer.Details) error {
	res := s.db.WithContext(ctx).
		Model(&models.Venue{}).
		Where("id = ? AND has_enhanced_details = ?", id, false).
		Updates(map[string]interface{}{
			"enhanced_description": d.EnhancedDescription,
			"operating_hours":      d.OperatingHours,
			"additional_info":      d.AdditionalInfo,
			"has_enhanced_details": true,
			"last_updated":         time.Now(),
		})
	// Zero rows means already enhanced or missing; either way the
	// transition stays one-way
	return res.Error
}

func (s *GormVenueStore) ByLocation(ctx context.Context, location string, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).
		Where("location ILIKE ?", "%"+location+"%").
		Order("rating DESC").
		Limit(limit).
		Find(&venues).Error
	return venues, err
}

func (s *GormVenueStore) ByCuisine(ctx context.Context, cuisine string, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).
		Where("cuisine_type = ?", cuisine).
		Order("rating DESC").
		Limit(limit).
		Find(&venues).Error
	return venues, err
}

func (s *GormVenueStore) Search(ctx context.Context, query string, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	pattern := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("rating DESC").
		Limit(limit).
		Find(&venues).Error
	return venues, err
}

func (s *GormVenueStore) Popular(ctx context.Context, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).
		Order("view_count DESC").
		Limit(limit).
		Find(&venues).Error
	return venues, err
}

func (s *GormVenueStore) Sweep(ctx context.Context, cutoff time.Time, viewThreshold int) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("view_count < ? AND (last_viewed IS NULL OR last_viewed < ?) AND created_at < ?",
			viewThreshold, cutoff, cutoff).
		Delete(&models.Venue{})
	return res.RowsAffected, res.Error
}
