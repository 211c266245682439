// Package abuse bounds request volume per client and flags automated
// submissions. The limiter is a best-effort deterrent: state is process-local
// by default (a Redis store can be swapped in for multi-instance
// deployments), resets on restart, and tolerates the odd in-flight race.
package abuse

import (
	"context"
	"time"
)

// State is the per-client window bookkeeping.
type State struct {
	Count        int       `json:"count"`
	WindowStart  time.Time `json:"window_start"`
	BlockedUntil time.Time `json:"blocked_until"`
}

// LimiterStore holds per-client state. Implementations: MemoryStore,
// RedisStore.
type LimiterStore interface {
	Get(ctx context.Context, key string) (State, bool, error)
	Set(ctx context.Context, key string, state State, ttl time.Duration) error
	Prune(ctx context.Context, now time.Time) (int, error)
}

// Decision is the outcome of a limiter check. RetryAfter is the hint exposed
// to the client; it never exceeds the window length unless a block is active.
type Decision struct {
	Allowed    bool
	Blocked    bool
	RetryAfter time.Duration
}

type Limiter struct {
	Store               LimiterStore
	Window              time.Duration
	MaxRequests         int
	SuspiciousThreshold int
	BlockDuration       time.Duration
	StateTTL            time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func (l *Limiter) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

// Allow records one request for key against the given ceiling and decides
// whether it may proceed. A count past the suspicious threshold escalates to
// a temporary block with the longer cooldown.
func (l *Limiter) Allow(ctx context.Context, key string, max int) (Decision, error) {
	now := l.clock()

	state, found, err := l.Store.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}

	if found && now.Before(state.BlockedUntil) {
		return Decision{Blocked: true, RetryAfter: state.BlockedUntil.Sub(now)}, nil
	}

	if !found || now.Sub(state.WindowStart) >= l.Window {
		state = State{Count: 1, WindowStart: now}
	} else {
		state.Count++
	}

	decision := Decision{Allowed: true}
	switch {
	case state.Count > l.SuspiciousThreshold:
		state.BlockedUntil = now.Add(l.BlockDuration)
		decision = Decision{Blocked: true, RetryAfter: l.BlockDuration}
	case state.Count > max:
		remaining := state.WindowStart.Add(l.Window).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		decision = Decision{RetryAfter: remaining}
	}

	if err := l.Store.Set(ctx, key, state, l.ttlFor(state, now)); err != nil {
		return Decision{}, err
	}
	return decision, nil
}

func (l *Limiter) ttlFor(state State, now time.Time) time.Duration {
	ttl := l.StateTTL
	if ttl <= 0 {
		ttl = 2 * l.Window
	}
	if remaining := state.BlockedUntil.Sub(now); remaining > ttl {
		ttl = remaining
	}
	return ttl
}

// Prune drops stale entries from the store. Wired to a cron job; the Redis
// store relies on key TTLs instead and reports zero.
func (l *Limiter) Prune(ctx context.Context) (int, error) {
	return l.Store.Prune(ctx, l.clock())
}
