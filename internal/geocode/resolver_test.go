package geocode

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
)

func testConfig(primary, fallback string) config.ResolverConfig {
	return config.ResolverConfig{
		PrimaryURL:  primary,
		FallbackURL: fallback,
		UserAgent:   "D8-Restaurant-App/1.0",
		Timeout:     2 * time.Second,
		MaxRetries:  2,
		RetryDelay:  10 * time.Millisecond,
		Timezone:    "UTC",
	}
}

// TestBuildLocationKey the place/region priority ladder
func TestBuildLocationKey(t *testing.T) {
	cases := []struct {
		name     string
		addr     nominatimAddress
		display  string
		expected string
	}{
		{"city and state", nominatimAddress{City: "San Francisco", State: "California"}, "", "San Francisco, California"},
		{"city and country", nominatimAddress{City: "Lyon", Country: "France"}, "", "Lyon, France"},
		{"town over county", nominatimAddress{Town: "Moab", County: "Grand County", State: "Utah"}, "", "Moab, Utah"},
		{"village", nominatimAddress{Village: "Vik", Country: "Iceland"}, "", "Vik, Iceland"},
		{"hamlet", nominatimAddress{Hamlet: "Elk", State: "California"}, "", "Elk, California"},
		{"city alone", nominatimAddress{City: "Singapore"}, "", "Singapore"},
		{"county and state", nominatimAddress{County: "Marin County", State: "California"}, "", "Marin County, California"},
		{"county alone", nominatimAddress{County: "Inyo County"}, "", "Inyo County"},
		{"state and country", nominatimAddress{State: "Bavaria", Country: "Germany"}, "", "Bavaria, Germany"},
		{"display name fallback", nominatimAddress{}, "Golden Gate Bridge, San Francisco", "Golden Gate Bridge"},
		{"nothing", nominatimAddress{}, "", UnknownLocation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildLocationKey(&nominatimResponse{Address: tc.addr, DisplayName: tc.display})
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestResolveCacheHit the second resolve for the same rounded coordinate
// must not issue a network request
func TestResolveCacheHit(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"address":{"city":"San Francisco","state":"California"}}`))
	}))
	defer srv.Close()

	r := NewResolver(testConfig(srv.URL, ""))
	ctx := context.Background()

	loc, err := r.Resolve(ctx, 37.7749, -122.4194)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc != "San Francisco, California" {
		t.Fatalf("unexpected location key: %s", loc)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Fatalf("expected 1 backend call, got %d", calls)
	}

	// Same coordinate within rounding precision
	loc2, err := r.Resolve(ctx, 37.77494, -122.41943)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if loc2 != loc {
		t.Errorf("cache returned a different key: %s vs %s", loc2, loc)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Errorf("cache hit should not call the backend, got %d calls", calls)
	}
}

// TestResolveRetriesThenFallback the primary is retried, then the
// secondary backend answers
func TestResolveRetriesThenFallback(t *testing.T) {
	var primaryCalls int64
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(&primaryCalls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"address":{"city":"Oakland","state":"California"}}`))
	}))
	defer fallback.Close()

	r := NewResolver(testConfig(primary.URL, fallback.URL))

	loc, err := r.Resolve(context.Background(), 37.8044, -122.2712)
	if err != nil {
		t.Fatalf("resolve should succeed via fallback: %v", err)
	}
	if loc != "Oakland, California" {
		t.Errorf("unexpected location key: %s", loc)
	}
	if primaryCalls != 3 {
		t.Errorf("expected 3 primary attempts (1 + 2 retries), got %d", primaryCalls)
	}
}

// TestResolveAllBackendsFail exhaustion yields ErrLocationUnavailable
func TestResolveAllBackendsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewResolver(testConfig(srv.URL, srv.URL))

	_, err := r.Resolve(context.Background(), 0.0001, 0.0001)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err != ErrLocationUnavailable {
		t.Errorf("expected ErrLocationUnavailable, got %v", err)
	}
}

// TestResolveSentinelTriggersRetry a sentinel result is treated like a failure
func TestResolveSentinelTriggersRetry(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		if n < 2 {
			w.Write([]byte(`{"address":{}}`)) // resolves to the sentinel
			return
		}
		w.Write([]byte(`{"address":{"city":"Berkeley","state":"California"}}`))
	}))
	defer srv.Close()

	r := NewResolver(testConfig(srv.URL, ""))

	loc, err := r.Resolve(context.Background(), 37.8715, -122.2730)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if loc != "Berkeley, California" {
		t.Errorf("unexpected location key: %s", loc)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestResolveInvalidCoordinate(t *testing.T) {
	r := NewResolver(testConfig("http://127.0.0.1:0", ""))
	if _, err := r.Resolve(context.Background(), math.NaN(), 0); err == nil {
		t.Error("NaN latitude should fail")
	}
	if _, err := r.Resolve(context.Background(), 0, math.Inf(1)); err == nil {
		t.Error("infinite longitude should fail")
	}
}

func TestCacheKeyPrecision(t *testing.T) {
	a := CacheKey(37.77491, -122.41941)
	b := CacheKey(37.77494, -122.41939)
	if a != b {
		t.Errorf("coordinates within precision should share a key: %s vs %s", a, b)
	}
	c := CacheKey(37.7760, -122.4194)
	if a == c {
		t.Error("distinct coordinates should not share a key")
	}
}

// TestDateKeyAndExpiry expiry is end-of-calendar-day in the reference timezone
func TestDateKeyAndExpiry(t *testing.T) {
	r := NewResolver(testConfig("http://127.0.0.1:0", ""))

	dk, err := r.DateKey("2024-06-01")
	if err != nil {
		t.Fatalf("date key failed: %v", err)
	}
	if dk != "2024-06-01" {
		t.Errorf("unexpected date key: %s", dk)
	}

	exp, err := r.ExpiryFor(dk)
	if err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	want := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	if !exp.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, exp)
	}

	if _, err := r.DateKey("06/01/2024"); err == nil {
		t.Error("malformed date should fail")
	}
}
