package recommender

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

func TestParseIdeasFencedBlock(t *testing.T) {
	content := "Here are my picks:\n```json\n[{\"name\":\"Zuni Cafe\",\"cuisine_type\":\"american\",\"rating\":4.7}]\n```\nEnjoy!"

	ideas, err := ParseIdeas(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ideas) != 1 || ideas[0].Name != "Zuni Cafe" {
		t.Fatalf("unexpected ideas: %+v", ideas)
	}
	if ideas[0].Rating != 4.7 {
		t.Errorf("expected rating 4.7, got %v", ideas[0].Rating)
	}
	if ideas[0].Source != models.SourceLive {
		t.Errorf("parsed ideas must carry the live source, got %s", ideas[0].Source)
	}
}

func TestParseIdeasBareArray(t *testing.T) {
	content := `Sure! [{"name":"Ferry Plaza","cuisine_type":"outdoor"},{"name":"Tartine","cuisine_type":"french"}] hope that helps`

	ideas, err := ParseIdeas(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("expected 2 ideas, got %d", len(ideas))
	}
	if ideas[0].Category != models.CategoryActivity {
		t.Errorf("outdoor should map to the activity category, got %s", ideas[0].Category)
	}
	if ideas[1].Category != models.CategoryRestaurant {
		t.Errorf("french should map to the restaurant category, got %s", ideas[1].Category)
	}
}

// TestParseIdeasNestedArray an idea carrying a nested array field must
// not truncate the list to its first bracket span
func TestParseIdeasNestedArray(t *testing.T) {
	content := `Here you go: [{"name":"Pok Pok","cuisine_type":"thai","tags":["wings","spicy"]},{"name":"Ava Gene's","cuisine_type":"italian"}]`

	ideas, err := ParseIdeas(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("expected 2 ideas, got %d", len(ideas))
	}
	if ideas[1].Name != "Ava Gene's" {
		t.Errorf("unexpected second idea: %+v", ideas[1])
	}
}

func TestParseIdeasSingleObject(t *testing.T) {
	content := `The best option is {"name":"Foreign Cinema","cuisine_type":"mediterranean"} downtown.`

	ideas, err := ParseIdeas(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ideas) != 1 || ideas[0].Name != "Foreign Cinema" {
		t.Fatalf("unexpected ideas: %+v", ideas)
	}
}

func TestParseIdeasDefaults(t *testing.T) {
	ideas, err := ParseIdeas(`[{"name":"Mystery Spot"}]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	idea := ideas[0]
	if idea.Rating != 4.0 {
		t.Errorf("missing rating should default to 4.0, got %v", idea.Rating)
	}
	if idea.PriceLevel != "medium" {
		t.Errorf("missing price should default to medium, got %s", idea.PriceLevel)
	}
	if !idea.IsOpen {
		t.Error("missing is_open should default to true")
	}

	ideas, err = ParseIdeas(`[{"name":"Night Bar","is_open":false,"rating":0.5}]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ideas[0].IsOpen {
		t.Error("explicit is_open=false should survive")
	}
	if ideas[0].Rating != 0.5 {
		t.Errorf("explicit rating should survive, got %v", ideas[0].Rating)
	}
}

func TestParseIdeasNoJSON(t *testing.T) {
	if _, err := ParseIdeas("I cannot help with that."); err != ErrNoIdeas {
		t.Errorf("expected ErrNoIdeas, got %v", err)
	}
	if _, err := ParseIdeas(""); err != ErrNoIdeas {
		t.Errorf("expected ErrNoIdeas on empty content, got %v", err)
	}
	// Nameless items are dropped
	if _, err := ParseIdeas(`[{"rating":4.2}]`); err != ErrNoIdeas {
		t.Errorf("expected ErrNoIdeas for nameless items, got %v", err)
	}
}

func TestBuildPromptMeal(t *testing.T) {
	req := &models.IdeaRequest{
		DateType:   "meal",
		MealTimes:  []string{"dinner"},
		PriceRange: "high",
		Cuisines:   []string{"italian", "french"},
		Date:       "2024-06-01", // a Saturday
	}
	p := BuildPrompt(req, "San Francisco, California")

	for _, want := range []string{
		"San Francisco, California",
		"upscale ($30-60 per person)",
		"italian, french",
		"Saturday, June 1, 2024",
		"weekend date",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("meal prompt missing %q", want)
		}
	}
	if strings.Contains(p, "USER PROFILE") {
		t.Error("prompt should omit the profile block without a user id")
	}
}

func TestBuildPromptActivity(t *testing.T) {
	req := &models.IdeaRequest{
		DateType:          "activity",
		ActivityTypes:     []string{"outdoor"},
		ActivityIntensity: "not_sure",
		PriceRange:        "free",
		Date:              "2024-06-03", // a Monday
		UserID:            "u-1",
		UserHobbies:       []string{"hiking", "photography"},
	}
	p := BuildPrompt(req, "Moab, Utah")

	for _, want := range []string{
		"any intensity level",
		"completely free activities",
		"weekday date",
		"USER PROFILE & PREFERENCES",
		"hiking, photography",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("activity prompt missing %q", want)
		}
	}
}

func TestBuildPromptExplore(t *testing.T) {
	req := &models.IdeaRequest{DateType: "explore", Date: "2024-06-02"}
	p := BuildPrompt(req, "Portland, Oregon")

	if !strings.Contains(p, "RESTAURANTS (3 ideas)") || !strings.Contains(p, "ACTIVITIES (3 ideas)") {
		t.Error("explore prompt should ask for the restaurant/activity mix")
	}
}

func TestSynthesize(t *testing.T) {
	ideas := Synthesize("Boise, Idaho", 43.6150, -116.2023)

	if len(ideas) != 6 {
		t.Fatalf("expected 6 synthesized ideas, got %d", len(ideas))
	}

	restaurants, activities := 0, 0
	for i, idea := range ideas {
		if idea.Source != models.SourceFallback {
			t.Errorf("idea %d missing the fallback source: %s", i, idea.Source)
		}
		if idea.Location != "Boise, Idaho" {
			t.Errorf("idea %d has wrong location: %s", i, idea.Location)
		}
		switch idea.Category {
		case models.CategoryRestaurant:
			restaurants++
		case models.CategoryActivity:
			activities++
		}
	}
	if restaurants != 3 || activities != 3 {
		t.Errorf("expected a 3/3 mix, got %d restaurants / %d activities", restaurants, activities)
	}

	// Deterministic across calls
	again := Synthesize("Boise, Idaho", 43.6150, -116.2023)
	for i := range ideas {
		if ideas[i] != again[i] {
			t.Errorf("idea %d differs across calls", i)
		}
	}

	// Ideas spread around the request coordinate
	if ideas[1].Latitude != 43.6150+0.01 {
		t.Errorf("unexpected offset latitude: %v", ideas[1].Latitude)
	}
}

func TestClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"[{\"name\":\"Nopa\",\"cuisine_type\":\"american\",\"rating\":4.4}]"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.RecommenderConfig{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   2000,
		Temperature: 0.7,
		Timeout:     2 * time.Second,
	})

	req := &models.IdeaRequest{DateType: "meal", Date: "2024-06-01"}
	ideas, err := c.Generate(context.Background(), req, "San Francisco, California")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(ideas) != 1 || ideas[0].Name != "Nopa" {
		t.Fatalf("unexpected ideas: %+v", ideas)
	}
}

func TestClientGenerateUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.RecommenderConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second})
	_, err := c.Generate(context.Background(), &models.IdeaRequest{DateType: "meal"}, "Anywhere")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "recommender unavailable") {
		t.Errorf("error should wrap ErrUnavailable: %v", err)
	}

	// No API key: fails fast without any call
	c2 := NewClient(config.RecommenderConfig{BaseURL: srv.URL, Timeout: time.Second})
	if _, err := c2.Generate(context.Background(), &models.IdeaRequest{}, "Anywhere"); err == nil {
		t.Error("expected an error without an API key")
	}
}
