// Package quota tracks rolling call budgets for external providers.
package quota

import (
	"sync"
	"time"
)

// Quota is a rolling-window call budget for one provider. The window
// resets lazily: whenever the elapsed time since windowStart reaches the
// window duration, the counter restarts from zero.
type Quota struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	calls       int
}

// New creates a quota allowing limit calls per window
func New(limit int, window time.Duration) *Quota {
	return &Quota{
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
	}
}

// TryAcquire permits one call if budget remains in the current window.
// The reset check, limit check, and increment happen as a single atomic
// step; callers must treat false as "skip this provider".
func (q *Quota) TryAcquire() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	if now.Sub(q.windowStart) >= q.window {
		q.windowStart = now
		q.calls = 0
	}
	if q.calls >= q.limit {
		return false
	}
	q.calls++
	return true
}

// Snapshot is a point-in-time view of a quota for status reporting
type Snapshot struct {
	Calls  int           `json:"calls"`
	Limit  int           `json:"limit"`
	Window time.Duration `json:"-"`
	Period string        `json:"period"`
}

// Snapshot returns the current usage without consuming budget
func (q *Quota) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	calls := q.calls
	if time.Since(q.windowStart) >= q.window {
		calls = 0
	}
	return Snapshot{
		Calls:  calls,
		Limit:  q.limit,
		Window: q.window,
		Period: periodName(q.window),
	}
}

func periodName(w time.Duration) string {
	switch {
	case w >= 24*time.Hour:
		return "daily"
	case w >= time.Hour:
		return "hourly"
	default:
		return w.String()
	}
}
