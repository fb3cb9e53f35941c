package recommender

import (
	"fmt"
	"strings"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// Filter vocabulary to human-readable prompt phrases
var mealPriceDescriptions = map[string]string{
	"low":    "budget-friendly (under $15 per person)",
	"medium": "moderate pricing ($15-30 per person)",
	"high":   "upscale ($30-60 per person)",
	"luxury": "fine dining ($60+ per person)",
}

var activityPriceDescriptions = map[string]string{
	"free":   "completely free activities (parks, hiking, museums with free admission, etc.)",
	"low":    "budget-friendly (under $20 per person)",
	"medium": "moderate pricing ($20-50 per person)",
	"high":   "upscale ($50-100 per person)",
	"luxury": "premium ($100+ per person)",
}

var intensityDescriptions = map[string]string{
	"low":      "relaxed, easy activities",
	"medium":   "moderate effort activities",
	"high":     "high energy, intense activities",
	"not_sure": "any intensity level",
}

func describe(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// dateParts formats the request date and derives the weekday context.
// Unparseable dates fall back to the raw string with no weekend hint.
func dateParts(date string) (formatted, dayOfWeek string, weekend bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date, "unknown", false
	}
	wd := t.Weekday()
	return t.Format("Monday, January 2, 2006"), wd.String(), wd == time.Saturday || wd == time.Sunday
}

func mealDateContext(weekend bool) string {
	if weekend {
		return "This is a weekend date, so consider restaurants that are popular for weekend dining and may have special brunch or dinner menus."
	}
	return "This is a weekday date, so consider restaurants that offer good value and aren't overly crowded."
}

func activityDateContext(weekend bool) string {
	if weekend {
		return "This is a weekend date, so consider activities that are popular for weekend outings and may have special weekend hours or events."
	}
	return "This is a weekday date, so consider activities that are available during weekdays and may offer better value or less crowds."
}

// userProfileBlock renders the personalization context, empty when the
// request carries no user identity
func userProfileBlock(req *models.IdeaRequest) string {
	if req.UserID == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nUSER PROFILE & PREFERENCES:\n")
	if req.UserAgeRange != "" {
		fmt.Fprintf(&b, "- Age Range: %s\n", req.UserAgeRange)
	}
	if len(req.UserHobbies) > 0 {
		fmt.Fprintf(&b, "- Hobbies & Interests: %s\n", strings.Join(req.UserHobbies, ", "))
	}
	if len(req.UserFavoriteCuisines) > 0 {
		fmt.Fprintf(&b, "- Favorite Cuisines: %s\n", strings.Join(req.UserFavoriteCuisines, ", "))
	}
	if len(req.UserTransportation) > 0 {
		fmt.Fprintf(&b, "- Transportation: %s\n", strings.Join(req.UserTransportation, ", "))
	}
	b.WriteString("\nUse this profile information to personalize recommendations that match the user's lifestyle, preferences, and relationship context.\n")
	return b.String()
}

const ideaJSONSchema = `[
  {
    "name": "Place Name",
    "description": "Detailed 2-3 sentence description highlighting what makes this place special for dates",
    "location": "Specific neighborhood, City",
    "address": "Full street address with city and state",
    "latitude": 40.7128,
    "longitude": -74.0060,
    "cuisine_type": "cuisine for restaurants, or sports/outdoor/indoor/entertainment/fitness for activities",
    "price_level": "free/low/medium/high/luxury",
    "is_open": true,
    "open_hours": "Specific hours of operation",
    "rating": 4.5,
    "why_recommended": "Why this place is perfect for this specific date occasion",
    "estimated_cost": "Specific cost range per person",
    "best_time": "Optimal time to visit",
    "duration": "Expected duration (e.g., '1-2 hours', 'Half day')"
  }
]`

// SystemMessage returns the system role content for a date type
func SystemMessage(dateType string) string {
	if dateType == "activity" {
		return "You are an expert activity recommendation specialist with extensive knowledge of entertainment, recreation, and date-worthy activities across major cities. You understand what makes activities perfect for dates, considering engagement, conversation opportunities, and shared experiences. Always respond with valid JSON arrays containing detailed activity recommendations. Be specific about real, well-known venues and activities and their actual details."
	}
	return "You are an expert restaurant recommendation specialist with extensive knowledge of dining scenes across major cities. You understand what makes restaurants perfect for dates, considering atmosphere, food quality, service, and romantic appeal. Always respond with valid JSON arrays containing detailed restaurant recommendations. Be specific about real, well-known restaurants and their actual details."
}

// BuildPrompt renders the user prompt for a request against a resolved
// location key
func BuildPrompt(req *models.IdeaRequest, locationKey string) string {
	switch req.DateType {
	case "activity":
		return activityPrompt(req, locationKey)
	case "explore":
		return explorePrompt(req, locationKey)
	default:
		return mealPrompt(req, locationKey)
	}
}

func mealPrompt(req *models.IdeaRequest, locationKey string) string {
	formatted, day, weekend := dateParts(req.Date)
	return fmt.Sprintf(`You are an expert restaurant recommendation specialist with deep knowledge of dining scenes across major cities.

CONTEXT & REQUIREMENTS:
- Date: %s (%s)
- Location: %s
- Date Type: %s
- Meal Time: %s
- Price Range: %s
- Cuisine Preferences: %s
%s
%s

SPECIFIC INSTRUCTIONS:
- Recommend 6-8 restaurants that are real, well-established establishments
- Focus on restaurants that are actually open on %s for %s
- Include a mix of well-known spots and hidden gems
- Ensure variety in cuisine types while respecting preferences
- Include restaurants that locals would recommend to friends

Return your response as a JSON array with this exact structure:
%s

IMPORTANT: Only recommend real, well-known restaurants that actually exist in %s or nearby areas. Do not make up restaurants or provide generic recommendations.`,
		formatted, day, locationKey, req.DateType,
		joinOr(req.MealTimes, "any time"),
		describe(mealPriceDescriptions, req.PriceRange, "any price range"),
		joinOr(req.Cuisines, "any cuisine"),
		userProfileBlock(req),
		mealDateContext(weekend),
		formatted, joinOr(req.MealTimes, "any time"),
		ideaJSONSchema, locationKey)
}

func activityPrompt(req *models.IdeaRequest, locationKey string) string {
	formatted, day, weekend := dateParts(req.Date)
	return fmt.Sprintf(`You are an expert activity recommendation specialist with deep knowledge of entertainment, recreation, and date-worthy activities across major cities.

CONTEXT & REQUIREMENTS:
- Date: %s (%s)
- Location: %s
- Date Type: %s
- Activity Types: %s
- Activity Intensity: %s
- Price Range: %s
%s
%s

SPECIFIC INSTRUCTIONS:
- Recommend 6-8 activities that are real, well-established venues or experiences
- Focus on activities that are actually available on %s
- Consider the specific activity intensity and types requested
- Consider weather-appropriate activities for the location and season
- Include activities that locals would recommend to friends

Return your response as a JSON array with this exact structure:
%s

IMPORTANT: Only recommend real, well-known activities and venues that actually exist in %s or nearby areas. Do not make up activities or provide generic recommendations.`,
		formatted, day, locationKey, req.DateType,
		joinOr(req.ActivityTypes, "any activity type"),
		describe(intensityDescriptions, req.ActivityIntensity, "any intensity level"),
		describe(activityPriceDescriptions, req.PriceRange, "any price range"),
		userProfileBlock(req),
		activityDateContext(weekend),
		formatted, ideaJSONSchema, locationKey)
}

func explorePrompt(req *models.IdeaRequest, locationKey string) string {
	formatted, day, weekend := dateParts(req.Date)
	context := "This is a weekday, so consider places that offer good value and aren't overly crowded."
	if weekend {
		context = "This is a weekend, so consider places that are popular for weekend outings and may have special weekend hours or events."
	}
	return fmt.Sprintf(`You are an expert local guide and recommendation specialist with deep knowledge of entertainment, dining, and recreational scenes across major cities.

CONTEXT & REQUIREMENTS:
- Date: %s (%s)
- Location: %s
- Purpose: Generate a curated mix of 6 ideas for exploring the area

%s

EXPLORE IDEAS CRITERIA:
Generate a diverse mix of 6 ideas that include:

1. RESTAURANTS (3 ideas): mix of cuisines, price ranges, atmospheres and meal times, both well-known and local favorites.
2. ACTIVITIES (3 ideas): mix of indoor and outdoor, different energy levels, both popular attractions and unique local experiences.
%s
SPECIFIC INSTRUCTIONS:
- Recommend 6 places that are real, well-established establishments
- Focus on places that are actually available on %s
- Include a mix of popular spots and hidden gems
- Use realistic coordinates within the %s area

Return your response as a JSON array with this exact structure:
%s

IMPORTANT: Only recommend real, well-known places that actually exist in %s or nearby areas. Ensure the mix includes both restaurants and activities.`,
		formatted, day, locationKey, context,
		userProfileBlock(req),
		formatted, locationKey, ideaJSONSchema, locationKey)
}
