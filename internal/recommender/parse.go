package recommender

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

// ErrNoIdeas reports that no parseable idea data was found in a
// recommender response
var ErrNoIdeas = errors.New("no ideas in response")

var (
	fencedArrayRe = regexp.MustCompile("(?s)```json\\s*(\\[.*?\\])\\s*```")
	bareArrayRe   = regexp.MustCompile(`(?s)(\[.*?\])`)
	bareObjectRe  = regexp.MustCompile(`\{[^{}]*\}`)
)

// rawIdea is the defensively-typed shape of one generated idea. IsOpen
// is a pointer so an absent field defaults to open.
type rawIdea struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Address        string   `json:"address"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	CuisineType    string   `json:"cuisine_type"`
	PriceLevel     string   `json:"price_level"`
	IsOpen         *bool    `json:"is_open"`
	OpenHours      string   `json:"open_hours"`
	Rating         *float64 `json:"rating"`
	WhyRecommended string   `json:"why_recommended"`
	EstimatedCost  string   `json:"estimated_cost"`
	BestTime       string   `json:"best_time"`
	Duration       string   `json:"duration"`
}

// ParseIdeas extracts ideas from a model response. Extraction is
// layered: a fenced json code block first, then the first bare array,
// then a bracket-balanced scan for arrays the non-greedy match cuts
// short, then a lone object treated as a one-element list. Items that
// fail to decode individually are dropped rather than failing the batch.
func ParseIdeas(content string) ([]models.Idea, error) {
	var raws []rawIdea

	if m := fencedArrayRe.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &raws); err != nil {
			raws = nil
		}
	}
	if raws == nil {
		if m := bareArrayRe.FindStringSubmatch(content); m != nil {
			if err := json.Unmarshal([]byte(m[1]), &raws); err != nil {
				raws = nil
			}
		}
	}
	if raws == nil {
		if arr := balancedArray(content); arr != "" {
			if err := json.Unmarshal([]byte(arr), &raws); err != nil {
				raws = nil
			}
		}
	}
	if raws == nil {
		if m := bareObjectRe.FindString(content); m != "" {
			var one rawIdea
			if err := json.Unmarshal([]byte(m), &one); err == nil {
				raws = []rawIdea{one}
			}
		}
	}
	if len(raws) == 0 {
		return nil, ErrNoIdeas
	}

	ideas := make([]models.Idea, 0, len(raws))
	for _, r := range raws {
		if r.Name == "" {
			continue
		}
		ideas = append(ideas, toIdea(r))
	}
	if len(ideas) == 0 {
		return nil, ErrNoIdeas
	}
	return ideas, nil
}

// balancedArray returns the first bracket-balanced array in content,
// scanning from the first '[' and tracking nesting depth. Ideas whose
// fields contain nested arrays confuse the non-greedy match; depth
// counting recovers the full outer list.
func balancedArray(content string) string {
	start := strings.IndexByte(content, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}

// toIdea applies defaults: rating 4.0, price medium, open unless stated
func toIdea(r rawIdea) models.Idea {
	idea := models.Idea{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		Address:        r.Address,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		CuisineType:    r.CuisineType,
		Category:       models.CategoryFor(r.CuisineType),
		PriceLevel:     r.PriceLevel,
		IsOpen:         true,
		OpenHours:      r.OpenHours,
		Rating:         4.0,
		WhyRecommended: r.WhyRecommended,
		EstimatedCost:  r.EstimatedCost,
		BestTime:       r.BestTime,
		Duration:       r.Duration,
		Source:         models.SourceLive,
	}
	if r.PriceLevel == "" {
		idea.PriceLevel = "medium"
	}
	if r.IsOpen != nil {
		idea.IsOpen = *r.IsOpen
	}
	if r.Rating != nil {
		idea.Rating = *r.Rating
	}
	return idea
}
