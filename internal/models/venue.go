package models

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Venue is the canonical, deduplicated record of a physical place.
// DB: venues
type Venue struct {
	ID          string  `gorm:"primaryKey;size:40" json:"id"`
	Name        string  `gorm:"column:name;size:255;not null" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Location    string  `gorm:"column:location;size:255;index:idx_venue_location" json:"location"`
	Address     string  `gorm:"column:address;type:text;not null" json:"address"`
	Lat         float64 `gorm:"column:lat;type:double precision" json:"lat"`
	Lng         float64 `gorm:"column:lng;type:double precision" json:"lng"`
	CuisineType string  `gorm:"column:cuisine_type;size:50;index:idx_venue_cuisine" json:"cuisine_type"`
	Category    string  `gorm:"column:category;size:20;index:idx_venue_category" json:"category"`
	PriceLevel  string  `gorm:"column:price_level;size:20" json:"price_level"`
	Rating      float64 `gorm:"column:rating" json:"rating"`

	EstimatedCost string `gorm:"column:estimated_cost;size:100" json:"estimated_cost,omitempty"`
	BestTime      string `gorm:"column:best_time;size:100" json:"best_time,omitempty"`
	OpenHours     string `gorm:"column:open_hours;size:255" json:"open_hours,omitempty"`
	ImageURL      string `gorm:"column:img_url;type:text" json:"image_url,omitempty"`
	WebsiteURL    string `gorm:"column:website_url;type:text" json:"website_url,omitempty"`
	MenuURL       string `gorm:"column:menu_url;type:text" json:"menu_url,omitempty"`

	// View analytics
	ViewCount  int64      `gorm:"column:view_count;not null;default:0;index:idx_venue_views,sort:desc" json:"view_count"`
	LastViewed *time.Time `gorm:"column:last_viewed" json:"last_viewed,omitempty"`

	// Enhancement block: transitions false -> true exactly once
	EnhancedDescription string `gorm:"column:enhanced_description;type:text" json:"enhanced_description,omitempty"`
	OperatingHours      string `gorm:"column:operating_hours;type:text" json:"operating_hours,omitempty"`
	AdditionalInfo      string `gorm:"column:additional_info;type:text" json:"additional_info,omitempty"`
	HasEnhancedDetails  bool   `gorm:"column:has_enhanced_details;not null;default:false" json:"has_enhanced_details"`

	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (Venue) TableName() string {
	return "venues"
}

// IdeaSet is one cached day of ideas for one location.
// DB: idea_sets, unique on (location_key, date_key)
type IdeaSet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LocationKey string    `gorm:"column:location_key;size:255;not null;uniqueIndex:idea_sets_loc_date_key,priority:1" json:"location_key"`
	DateKey     string    `gorm:"column:date_key;size:10;not null;uniqueIndex:idea_sets_loc_date_key,priority:2" json:"date_key"`
	Ideas       []byte    `gorm:"column:ideas;type:jsonb;not null" json:"-"`
	GeneratedAt time.Time `gorm:"column:generated_at;not null" json:"generated_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null;index:idx_idea_sets_expiry" json:"expires_at"`
}

func (IdeaSet) TableName() string {
	return "idea_sets"
}

// VenueID derives the deterministic venue identifier from address and
// coordinate: sha1 of lowercase(trimmed address) + "_" + lat + "," + lng,
// coordinates fixed at 4 decimals so the same place always hashes the same
// across restarts.
func VenueID(address string, lat, lng float64) string {
	key := normalize(address) + "_" +
		strconv.FormatFloat(lat, 'f', 4, 64) + "," +
		strconv.FormatFloat(lng, 'f', 4, 64)
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
