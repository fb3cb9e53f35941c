package recommender

import (
	"fmt"

	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// Synthesize produces a deterministic local idea set when the external
// recommender fails: three restaurants and three activities spread
// around the request coordinate. Synthesized sets are served but never
// cached, so a later request retries the real recommender.
func Synthesize(locationKey string, lat, lng float64) []models.Idea {
	mk := func(idea models.Idea, dLat, dLng float64) models.Idea {
		idea.Location = locationKey
		idea.Latitude = lat + dLat
		idea.Longitude = lng + dLng
		idea.Category = models.CategoryFor(idea.CuisineType)
		idea.IsOpen = true
		idea.Source = models.SourceFallback
		return idea
	}

	return []models.Idea{
		mk(models.Idea{
			Name:           "Local Coffee Shop",
			Description:    "A cozy coffee shop perfect for casual dates and conversation. Great atmosphere for getting to know someone over coffee and pastries.",
			Address:        fmt.Sprintf("123 Main St, %s", locationKey),
			CuisineType:    "american",
			PriceLevel:     "low",
			OpenHours:      "6:00 AM - 8:00 PM",
			Rating:         4.2,
			WhyRecommended: "Perfect for casual first dates with great coffee and comfortable seating",
			EstimatedCost:  "$5-12 per person",
			BestTime:       "2:00 PM",
		}, 0, 0),
		mk(models.Idea{
			Name:           "Italian Bistro",
			Description:    "A charming Italian restaurant with romantic ambiance and authentic pasta dishes. Perfect for dinner dates.",
			Address:        fmt.Sprintf("456 Oak Ave, %s", locationKey),
			CuisineType:    "italian",
			PriceLevel:     "medium",
			OpenHours:      "5:00 PM - 10:00 PM",
			Rating:         4.5,
			WhyRecommended: "Romantic atmosphere with excellent Italian cuisine perfect for dinner dates",
			EstimatedCost:  "$20-35 per person",
			BestTime:       "7:00 PM",
		}, 0.01, 0.01),
		mk(models.Idea{
			Name:           "Sushi Bar",
			Description:    "An elegant sushi restaurant with fresh fish and intimate seating. Perfect for sophisticated dates and trying new flavors together.",
			Address:        fmt.Sprintf("789 Sushi St, %s", locationKey),
			CuisineType:    "japanese",
			PriceLevel:     "high",
			OpenHours:      "5:30 PM - 10:30 PM",
			Rating:         4.6,
			WhyRecommended: "Sophisticated dining experience perfect for special occasions",
			EstimatedCost:  "$40-60 per person",
			BestTime:       "8:00 PM",
		}, 0.015, -0.015),
		mk(models.Idea{
			Name:           "Local Park",
			Description:    "A beautiful park with walking trails, picnic areas, and scenic views. Great for outdoor dates and activities.",
			Address:        fmt.Sprintf("789 Park Blvd, %s", locationKey),
			CuisineType:    "outdoor",
			PriceLevel:     "free",
			OpenHours:      "6:00 AM - 10:00 PM",
			Rating:         4.3,
			WhyRecommended: "Perfect for outdoor dates with beautiful scenery and free activities",
			EstimatedCost:  "Free",
			BestTime:       "4:00 PM",
		}, -0.01, -0.01),
		mk(models.Idea{
			Name:           "Art Museum",
			Description:    "A cultural destination with rotating exhibits and beautiful architecture. Great for intellectual dates and cultural experiences.",
			Address:        fmt.Sprintf("321 Culture St, %s", locationKey),
			CuisineType:    "entertainment",
			PriceLevel:     "low",
			OpenHours:      "10:00 AM - 6:00 PM",
			Rating:         4.4,
			WhyRecommended: "Cultural experience perfect for intellectual dates and meaningful conversations",
			EstimatedCost:  "$8-15 per person",
			BestTime:       "2:00 PM",
		}, 0.02, -0.02),
		mk(models.Idea{
			Name:           "Escape Room",
			Description:    "An interactive puzzle experience perfect for couples who enjoy challenges and teamwork. Great for building connection through problem-solving.",
			Address:        fmt.Sprintf("555 Puzzle Ave, %s", locationKey),
			CuisineType:    "entertainment",
			PriceLevel:     "medium",
			OpenHours:      "12:00 PM - 10:00 PM",
			Rating:         4.5,
			WhyRecommended: "Interactive experience perfect for couples who love puzzles and teamwork",
			EstimatedCost:  "$25-35 per person",
			BestTime:       "7:00 PM",
		}, 0.025, 0.025),
	}
}
