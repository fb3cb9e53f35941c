package models

// IdeaRequest is the body accepted by the ideas endpoints.
// Filter vocabulary mirrors the mobile client: date_type meal|activity|explore,
// price_range free/low/medium/high/luxury, activity_intensity low/medium/high/not_sure.
type IdeaRequest struct {
	DateType          string   `json:"date_type"`
	MealTimes         []string `json:"meal_times,omitempty"`
	PriceRange        string   `json:"price_range"`
	Cuisines          []string `json:"cuisines,omitempty"`
	ActivityTypes     []string `json:"activity_types,omitempty"`
	ActivityIntensity string   `json:"activity_intensity,omitempty"`
	Date              string   `json:"date"` // YYYY-MM-DD
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	Page              int      `json:"page,omitempty"`

	// User profile context, passed through to the recommender prompt
	UserID               string   `json:"user_id,omitempty"`
	UserAgeRange         string   `json:"user_age_range,omitempty"`
	UserHobbies          []string `json:"user_hobbies,omitempty"`
	UserTransportation   []string `json:"user_transportation,omitempty"`
	UserFavoriteCuisines []string `json:"user_favorite_cuisines,omitempty"`
}

// Idea provenance values
const (
	SourceLive     = "live"     // returned by the external recommender
	SourceFallback = "fallback" // synthesized locally after a recommender failure
)

// Idea is one recommended venue or activity. Immutable once produced
// into a cached idea set.
type Idea struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Location       string  `json:"location"` // neighborhood, city
	Address        string  `json:"address"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CuisineType    string  `json:"cuisine_type"` // cuisine for restaurants, type for activities
	Category       string  `json:"category"`     // restaurant | activity
	PriceLevel     string  `json:"price_level"`
	IsOpen         bool    `json:"is_open"`
	OpenHours      string  `json:"open_hours,omitempty"`
	Rating         float64 `json:"rating"`
	WhyRecommended string  `json:"why_recommended,omitempty"`
	EstimatedCost  string  `json:"estimated_cost,omitempty"`
	BestTime       string  `json:"best_time,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	WebsiteURL     string  `json:"website_url,omitempty"`
	MenuURL        string  `json:"menu_url,omitempty"`
	Source         string  `json:"source"` // live | fallback
}

// IdeaResponse is the envelope returned by the ideas endpoints
type IdeaResponse struct {
	Recommendations []Idea  `json:"recommendations"`
	TotalFound      int     `json:"total_found"`
	QueryUsed       string  `json:"query_used"`
	ProcessingTime  float64 `json:"processing_time"`
	LocationKey     string  `json:"location_key,omitempty"`
	Cached          bool    `json:"cached"`
}

// activity type vocabulary; everything else counts as a restaurant cuisine
var activityTypes = map[string]bool{
	"sports":        true,
	"outdoor":       true,
	"indoor":        true,
	"entertainment": true,
	"fitness":       true,
}

// CategoryFor maps a cuisine/activity type string to the idea category
func CategoryFor(cuisineType string) string {
	if activityTypes[normalize(cuisineType)] {
		return CategoryActivity
	}
	return CategoryRestaurant
}

// Idea categories
const (
	CategoryRestaurant = "restaurant"
	CategoryActivity   = "activity"
)
