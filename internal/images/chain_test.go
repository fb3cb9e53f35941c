package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tvonkoch-eng/D8-sub000/internal/quota"
)

// stubProvider is a canned provider for chain behavior tests
type stubProvider struct {
	name       string
	configured bool
	url        string
	err        error
	calls      int64
}

func (s *stubProvider) Name() string     { return s.name }
func (s *stubProvider) Configured() bool { return s.configured }
func (s *stubProvider) Fetch(ctx context.Context, req Request) (string, error) {
	atomic.AddInt64(&s.calls, 1)
	return s.url, s.err
}

func chainOf(entries ...entry) *Chain {
	return &Chain{entries: entries, memo: make(map[string]string)}
}

func TestBuildQuery(t *testing.T) {
	cases := []struct {
		category string
		location string
		expected string
	}{
		{"italian", "", "italian restaurant pasta food"},
		{"Italian", "San Francisco, California", "italian restaurant pasta food San Francisco"},
		{"outdoor", "Moab, Utah", "outdoor nature activity Moab"},
		{"fusion", "", "fusion restaurant"},
		{"fitness", "", "fitness gym workout"},
	}
	for _, tc := range cases {
		if got := BuildQuery(tc.category, tc.location); got != tc.expected {
			t.Errorf("BuildQuery(%q, %q) = %q, expected %q", tc.category, tc.location, got, tc.expected)
		}
	}
}

// TestEnrichMemoized the second lookup for the same venue hits the memo
// and consumes neither network nor quota
func TestEnrichMemoized(t *testing.T) {
	p := &stubProvider{name: "stock", configured: true, url: "https://img.example/1.jpg"}
	q := quota.New(10, time.Hour)
	c := chainOf(entry{provider: p, quota: q})

	req := Request{Name: "Trattoria Roma", Category: "italian", Location: "Oakland, California"}

	if got := c.Enrich(context.Background(), req); got != "https://img.example/1.jpg" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := c.Enrich(context.Background(), req); got != "https://img.example/1.jpg" {
		t.Fatalf("memo miss: %s", got)
	}
	if p.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", p.calls)
	}
	if c.Status()["stock"].Calls != 1 {
		t.Errorf("memo hit should not consume quota, got %d calls", c.Status()["stock"].Calls)
	}
}

// TestEnrichQuotaSkip an exhausted provider is skipped and the next one
// answers without error
func TestEnrichQuotaSkip(t *testing.T) {
	exhausted := &stubProvider{name: "first", configured: true, url: "https://img.example/first.jpg"}
	fresh := &stubProvider{name: "second", configured: true, url: "https://img.example/second.jpg"}

	qa := quota.New(1, time.Hour)
	qa.TryAcquire() // burn the budget
	c := chainOf(
		entry{provider: exhausted, quota: qa},
		entry{provider: fresh, quota: quota.New(10, time.Hour)},
	)

	got := c.Enrich(context.Background(), Request{Name: "Cafe", Category: "french"})
	if got != "https://img.example/second.jpg" {
		t.Fatalf("expected the second provider's url, got %s", got)
	}
	if exhausted.calls != 0 {
		t.Errorf("exhausted provider should not be called, got %d calls", exhausted.calls)
	}
}

// TestEnrichUnconfiguredSkip a provider without credentials is skipped
// without consuming its budget
func TestEnrichUnconfiguredSkip(t *testing.T) {
	missing := &stubProvider{name: "first", configured: false}
	fresh := &stubProvider{name: "second", configured: true, url: "https://img.example/x.jpg"}

	c := chainOf(
		entry{provider: missing, quota: quota.New(5, time.Hour)},
		entry{provider: fresh, quota: quota.New(5, time.Hour)},
	)

	if got := c.Enrich(context.Background(), Request{Name: "Spot", Category: "thai"}); got != "https://img.example/x.jpg" {
		t.Fatalf("unexpected url: %s", got)
	}
	if missing.calls != 0 {
		t.Error("unconfigured provider should never be called")
	}
	if c.Status()["first"].Calls != 0 {
		t.Error("unconfigured provider should not consume budget")
	}
}

// TestEnrichFallthrough empty results and errors fall through the chain;
// a total miss yields an empty URL and is not memoized
func TestEnrichFallthrough(t *testing.T) {
	empty := &stubProvider{name: "a", configured: true, url: ""}
	broken := &stubProvider{name: "b", configured: true, err: context.DeadlineExceeded}

	c := chainOf(
		entry{provider: empty, quota: quota.New(5, time.Hour)},
		entry{provider: broken, quota: quota.New(5, time.Hour)},
	)

	req := Request{Name: "Nowhere", Category: "indian"}
	if got := c.Enrich(context.Background(), req); got != "" {
		t.Fatalf("expected empty url, got %s", got)
	}

	// A miss must stay retryable
	empty.url = "https://img.example/late.jpg"
	if got := c.Enrich(context.Background(), req); got != "https://img.example/late.jpg" {
		t.Errorf("miss should not be memoized, got %s", got)
	}
}

// TestFoursquareProvider the search -> details -> photo URL assembly
func TestFoursquareProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v3/places/search"):
			if r.Header.Get("Authorization") != "fsq-key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"results":[{"fsq_id":"abc123"}]}`))
		case strings.HasPrefix(r.URL.Path, "/v3/places/abc123"):
			w.Write([]byte(`{"photos":[{"prefix":"https://fastly.4sqi.net/img/general/","suffix":"/photo.jpg"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := &foursquareProvider{apiKey: "fsq-key", baseURL: srv.URL, client: srv.Client()}
	url, err := p.Fetch(context.Background(), Request{Name: "Zuni Cafe", Lat: 37.7764, Lng: -122.4226})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	want := "https://fastly.4sqi.net/img/general/400x300/photo.jpg"
	if url != want {
		t.Errorf("expected %s, got %s", want, url)
	}

	// Without a coordinate the provider declines immediately
	url, err = p.Fetch(context.Background(), Request{Name: "Zuni Cafe"})
	if err != nil || url != "" {
		t.Errorf("expected silent miss without coordinate, got %q / %v", url, err)
	}
}

func TestPexelsProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "1" || r.URL.Query().Get("orientation") != "landscape" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"photos":[{"src":{"medium":"https://images.pexels.com/m.jpg"}}]}`))
	}))
	defer srv.Close()

	p := &pexelsProvider{apiKey: "px-key", baseURL: srv.URL, client: srv.Client()}
	url, err := p.Fetch(context.Background(), Request{Name: "Sushi Bar", Category: "japanese"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if url != "https://images.pexels.com/m.jpg" {
		t.Errorf("unexpected url: %s", url)
	}
}

func TestUnsplashProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Client-ID ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"results":[{"urls":{"regular":"https://images.unsplash.com/r.jpg"}}]}`))
	}))
	defer srv.Close()

	p := &unsplashProvider{apiKey: "un-key", baseURL: srv.URL, client: srv.Client()}
	url, err := p.Fetch(context.Background(), Request{Name: "Climbing Gym", Category: "fitness"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if url != "https://images.unsplash.com/r.jpg" {
		t.Errorf("unexpected url: %s", url)
	}
}
