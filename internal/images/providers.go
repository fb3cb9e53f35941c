package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	foursquareBaseURL = "https://api.foursquare.com"
	pexelsBaseURL     = "https://api.pexels.com"
	unsplashBaseURL   = "https://api.unsplash.com"
)

// Request describes the venue a photo is wanted for
type Request struct {
	Name     string
	Category string // cuisine type or activity type
	Location string // location key, may be empty
	Lat      float64
	Lng      float64
}

// Provider fetches one candidate photo URL for a venue. An empty URL
// with a nil error means the provider had nothing for this venue.
type Provider interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context, req Request) (string, error)
}

// foursquareProvider returns real photos of the specific place: a
// places search near the coordinate, then a details call for photos.
type foursquareProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (p *foursquareProvider) Name() string     { return "foursquare" }
func (p *foursquareProvider) Configured() bool { return p.apiKey != "" }

func (p *foursquareProvider) Fetch(ctx context.Context, req Request) (string, error) {
	if req.Lat == 0 && req.Lng == 0 {
		return "", nil
	}

	// Step 1: search for the venue near the coordinate
	q := url.Values{}
	q.Set("query", req.Name)
	q.Set("ll", fmt.Sprintf("%f,%f", req.Lat, req.Lng))
	q.Set("radius", "1000")
	q.Set("limit", "5")

	var search struct {
		Results []struct {
			FsqID string `json:"fsq_id"`
		} `json:"results"`
	}
	if err := p.get(ctx, "/v3/places/search", q, &search); err != nil {
		return "", err
	}
	if len(search.Results) == 0 || search.Results[0].FsqID == "" {
		return "", nil
	}

	// Step 2: fetch the place's photos
	dq := url.Values{}
	dq.Set("fields", "photos")

	var details struct {
		Photos []struct {
			Prefix string `json:"prefix"`
			Suffix string `json:"suffix"`
		} `json:"photos"`
	}
	if err := p.get(ctx, "/v3/places/"+search.Results[0].FsqID, dq, &details); err != nil {
		return "", err
	}
	if len(details.Photos) == 0 {
		return "", nil
	}

	ph := details.Photos[0]
	return ph.Prefix + "400x300" + ph.Suffix, nil
}

func (p *foursquareProvider) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(p.baseURL, "/")+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("foursquare request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("foursquare status=%d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// pexelsProvider searches generic stock photos by category keywords
type pexelsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (p *pexelsProvider) Name() string     { return "pexels" }
func (p *pexelsProvider) Configured() bool { return p.apiKey != "" }

func (p *pexelsProvider) Fetch(ctx context.Context, r Request) (string, error) {
	q := url.Values{}
	q.Set("query", BuildQuery(r.Category, r.Location))
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(p.baseURL, "/")+"/v1/search", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels status=%d", resp.StatusCode)
	}

	var body struct {
		Photos []struct {
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Photos) == 0 {
		return "", nil
	}
	return body.Photos[0].Src.Medium, nil
}

// unsplashProvider searches generic stock photos by category keywords
type unsplashProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func (p *unsplashProvider) Name() string     { return "unsplash" }
func (p *unsplashProvider) Configured() bool { return p.apiKey != "" }

func (p *unsplashProvider) Fetch(ctx context.Context, r Request) (string, error) {
	q := url.Values{}
	q.Set("query", BuildQuery(r.Category, r.Location))
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(p.baseURL, "/")+"/search/photos", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Client-ID "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash status=%d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Results) == 0 {
		return "", nil
	}
	return body.Results[0].URLs.Regular, nil
}
