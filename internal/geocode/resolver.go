// Package geocode resolves device coordinates into stable location keys
// via reverse geocoding, with caching and bounded retry across backends.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
)

// UnknownLocation is the sentinel returned when every backend fails.
// It is never a usable location key.
const UnknownLocation = "Unknown Location"

// ErrLocationUnavailable reports that resolution exhausted all backends.
// Callers must treat it as terminal: no caching, no generation.
var ErrLocationUnavailable = errors.New("location unavailable")

// Resolver turns coordinates into human-readable location keys. The
// coordinate cache is per-instance state, injected wherever the resolver
// goes, so parallel pipelines (and tests) get independent caches.
type Resolver struct {
	cfg        config.ResolverConfig
	httpClient *http.Client
	tz         *time.Location

	mu    sync.RWMutex
	cache map[string]string // "%.4f,%.4f" -> LocationKey
}

// NewResolver creates a resolver with an empty coordinate cache
func NewResolver(cfg config.ResolverConfig) *Resolver {
	return &Resolver{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tz:    cfg.Location(),
		cache: make(map[string]string),
	}
}

// Timezone returns the resolver's reference timezone
func (r *Resolver) Timezone() *time.Location {
	return r.tz
}

// CacheKey is the fixed-precision form of a coordinate used as the
// coordinate-cache key (~11m at 4 decimals).
func CacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// Resolve returns the location key for a coordinate. Cache hits return
// without any network call. On miss it queries the primary backend with
// bounded retries, then the fallback backend; if everything fails it
// returns ErrLocationUnavailable, never a substituted default.
func (r *Resolver) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	log := logger.GetLogger("geocode")

	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return "", fmt.Errorf("invalid coordinate (%v, %v): %w", lat, lng, ErrLocationUnavailable)
	}

	key := CacheKey(lat, lng)
	r.mu.RLock()
	cached, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		log.Debugf("[coord_cache] HIT %s → %s", key, cached)
		return cached, nil
	}

	// Primary backend: initial attempt + MaxRetries retries with a fixed delay
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("resolve canceled: %w", ErrLocationUnavailable)
			case <-time.After(r.cfg.RetryDelay):
			}
		}

		loc, err := r.reverseGeocode(ctx, r.cfg.PrimaryURL, lat, lng)
		if err != nil {
			log.Warnf("reverse geocode failed (attempt %d/%d): %v", attempt+1, r.cfg.MaxRetries+1, err)
			continue
		}
		if loc == UnknownLocation {
			log.Warnf("reverse geocode returned sentinel (attempt %d/%d)", attempt+1, r.cfg.MaxRetries+1)
			continue
		}

		r.put(key, loc)
		return loc, nil
	}

	// Secondary backend, one attempt
	if r.cfg.FallbackURL != "" {
		loc, err := r.reverseGeocode(ctx, r.cfg.FallbackURL, lat, lng)
		if err == nil && loc != UnknownLocation {
			log.Infof("fallback backend resolved %s → %s", key, loc)
			r.put(key, loc)
			return loc, nil
		}
		if err != nil {
			log.Warnf("fallback backend failed: %v", err)
		}
	}

	log.Errorf("all geocoding backends exhausted for %s", key)
	return "", ErrLocationUnavailable
}

func (r *Resolver) put(key, loc string) {
	r.mu.Lock()
	r.cache[key] = loc
	r.mu.Unlock()
}

// nominatimAddress is the address block of a Nominatim reverse response
type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	Hamlet  string `json:"hamlet"`
	County  string `json:"county"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type nominatimResponse struct {
	Address     nominatimAddress `json:"address"`
	DisplayName string           `json:"display_name"`
}

// reverseGeocode queries one Nominatim-compatible backend
func (r *Resolver) reverseGeocode(ctx context.Context, baseURL string, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse", strings.TrimRight(baseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))
	q.Set("zoom", "10")
	q.Set("addressdetails", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode status=%d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return buildLocationKey(&result), nil
}

// buildLocationKey walks the place/region priority ladder:
// city+state → city+country → city → county+state → county+country →
// county → state+country → sentinel.
func buildLocationKey(res *nominatimResponse) string {
	a := res.Address

	place := firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet)
	region := firstNonEmpty(a.State, a.Country)

	switch {
	case place != "" && region != "":
		return place + ", " + region
	case place != "":
		return place
	case a.County != "" && region != "":
		return a.County + ", " + region
	case a.County != "":
		return a.County
	case a.State != "" && a.Country != "":
		return a.State + ", " + a.Country
	}

	// Last resort: leading segment of the display name
	if res.DisplayName != "" {
		if head := strings.TrimSpace(strings.SplitN(res.DisplayName, ",", 2)[0]); head != "" {
			return head
		}
	}
	return UnknownLocation
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// DateKey validates and normalizes a YYYY-MM-DD calendar day in the
// resolver's reference timezone. An empty input means "today".
func (r *Resolver) DateKey(date string) (string, error) {
	if date == "" {
		return time.Now().In(r.tz).Format("2006-01-02"), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, r.tz)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Format("2006-01-02"), nil
}

// ExpiryFor returns end-of-calendar-day for a dateKey in the resolver's
// reference timezone: the natural lease for one idea set per day.
func (r *Resolver) ExpiryFor(dateKey string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateKey, r.tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	return t.AddDate(0, 0, 1), nil
}
