// Package images resolves venue photos through an ordered provider
// chain, with per-provider call budgets and a per-chain memo cache.
package images

import (
	"context"
	"net/http"
	"sync"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/quota"
)

// entry pairs a provider with its call budget
type entry struct {
	provider Provider
	quota    *quota.Quota
}

// Chain walks photo providers in priority order. The memo cache and
// quota counters are per-chain state, so independent chains (tests,
// parallel pipelines) never share budgets.
type Chain struct {
	entries []entry

	mu   sync.RWMutex
	memo map[string]string
}

// NewChain builds the production chain: Foursquare (place-specific
// photos), then Pexels, then Unsplash stock searches.
func NewChain(cfg config.ImagesConfig) *Chain {
	client := &http.Client{Timeout: cfg.Timeout}
	return &Chain{
		entries: []entry{
			{
				provider: &foursquareProvider{apiKey: cfg.Foursquare.APIKey, baseURL: foursquareBaseURL, client: client},
				quota:    quota.New(cfg.Foursquare.Limit, cfg.Foursquare.Window),
			},
			{
				provider: &pexelsProvider{apiKey: cfg.Pexels.APIKey, baseURL: pexelsBaseURL, client: client},
				quota:    quota.New(cfg.Pexels.Limit, cfg.Pexels.Window),
			},
			{
				provider: &unsplashProvider{apiKey: cfg.Unsplash.APIKey, baseURL: unsplashBaseURL, client: client},
				quota:    quota.New(cfg.Unsplash.Limit, cfg.Unsplash.Window),
			},
		},
		memo: make(map[string]string),
	}
}

// memoKey identifies a venue for memoization purposes
func memoKey(req Request) string {
	return req.Name + "|" + req.Category + "|" + req.Location
}

// Enrich returns the best available photo URL for a venue, or "" when
// every provider missed. Memo hits return without any network call or
// quota consumption. Providers without credentials are skipped without
// consuming budget; exhausted providers are skipped silently. Misses
// are not memoized, so a venue can pick up a photo on a later pass.
func (c *Chain) Enrich(ctx context.Context, req Request) string {
	log := logger.GetLogger("images")

	key := memoKey(req)
	c.mu.RLock()
	cached, ok := c.memo[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	for _, e := range c.entries {
		if !e.provider.Configured() {
			continue
		}
		if !e.quota.TryAcquire() {
			log.Debugf("provider %s over budget, skipping", e.provider.Name())
			continue
		}

		url, err := e.provider.Fetch(ctx, req)
		if err != nil {
			log.Warnf("provider %s failed for %q: %v", e.provider.Name(), req.Name, err)
			continue
		}
		if url == "" {
			continue
		}

		c.mu.Lock()
		c.memo[key] = url
		c.mu.Unlock()
		return url
	}

	log.Debugf("no photo found for %q (%s)", req.Name, req.Category)
	return ""
}

// ProviderStatus is the externally reported state of one provider
type ProviderStatus struct {
	Configured bool   `json:"configured"`
	Calls      int    `json:"calls"`
	RateLimit  int    `json:"rate_limit"`
	Period     string `json:"period"`
}

// Status reports per-provider configuration and budget usage
func (c *Chain) Status() map[string]ProviderStatus {
	out := make(map[string]ProviderStatus, len(c.entries))
	for _, e := range c.entries {
		s := e.quota.Snapshot()
		out[e.provider.Name()] = ProviderStatus{
			Configured: e.provider.Configured(),
			Calls:      s.Calls,
			RateLimit:  s.Limit,
			Period:     s.Period,
		}
	}
	return out
}
