package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cometcontrol/comet-backend/pkg/logger"
)

// Policy defines one fixed-window throttle for a traffic surface.
type Policy struct {
	Action string
	Limit  int
	Window time.Duration
}

// NewPolicy builds a policy with the supplied window and limit.
func NewPolicy(action string, limit int, window time.Duration) Policy {
	return Policy{
		Action: strings.ToLower(strings.TrimSpace(action)),
		Limit:  limit,
		Window: window,
	}
}

// Enabled reports whether the policy throttles at all.
func (p Policy) Enabled() bool {
	return p.Limit > 0 && p.Window > 0
}

// Result reports the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the seconds until the window resets, never below 1 for a
// denied attempt.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(time.Until(r.ResetAt).Seconds())
	if !now.IsZero() {
		secs = int(r.ResetAt.Sub(now).Seconds())
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is a process-local fixed-window counter store keyed by
// "{action}:{identity}". Counters are deliberately ephemeral: a restart
// forgets them, and an expired entry is functionally equivalent to an absent
// one.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewLimiter returns an empty limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow charges one attempt against the policy for the identity. The first
// attempt of a window (or any attempt after the previous window elapsed)
// starts a fresh window with count 1. Attempts beyond the limit are denied
// without further incrementing.
func (l *Limiter) Allow(policy Policy, identity string) Result {
	if !policy.Enabled() {
		return Result{Allowed: true, Remaining: policy.Limit}
	}

	key := fmt.Sprintf("%s:%s", policy.Action, identity)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.entries[key]
	if !ok || !existing.resetAt.After(now) {
		fresh := &entry{count: 1, resetAt: now.Add(policy.Window)}
		l.entries[key] = fresh
		return Result{Allowed: true, Remaining: policy.Limit - 1, ResetAt: fresh.resetAt}
	}

	if existing.count >= policy.Limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: existing.resetAt}
	}

	existing.count++
	return Result{Allowed: true, Remaining: policy.Limit - existing.count, ResetAt: existing.resetAt}
}

// GC drops every entry whose window has already elapsed and returns how many
// were removed. Housekeeping only: correctness never depends on it.
func (l *Limiter) GC() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, e := range l.entries {
		if !e.resetAt.After(now) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// StartGC sweeps expired entries on the given interval until ctx is done.
func (l *Limiter) StartGC(ctx context.Context, interval time.Duration, logg *logger.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := l.GC()
				if removed > 0 && logg != nil {
					logg.Info(logg.WithField(ctx, "removed", removed), "ratelimit.gc.swept")
				}
			}
		}
	}()
}
