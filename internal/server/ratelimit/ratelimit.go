// Package ratelimit meters requests per client and route with token buckets from
// golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision reports the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter *rate.Limiter
	limit   int
	seen    time.Time
}

// Limiter keeps one token bucket per client, method and route.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewLimiter creates a limiter. A nil config allows 600 requests per minute on every route.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{Enabled: true, Default: Rule{Limit: 600, Window: time.Minute}}
	}
	return &Limiter{
		cfg:     *cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes a token for the request if one is available.
func (l *Limiter) Allow(clientID, path, method string) Decision {
	if !l.cfg.Enabled || l.cfg.Allowlist[clientID] {
		return Decision{Allowed: true}
	}

	rule := Match(path, method, l.cfg.Rules)
	key := clientID + " " + method + " " + path
	if rule == nil {
		rule = &l.cfg.Default
		key = clientID + " *"
	} else if rule.Path != path {
		key = clientID + " " + method + " " + rule.Path
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)
	b := l.buckets[key]
	if b == nil {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		every := rule.Window / time.Duration(rule.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), burst), limit: rule.Limit}
		l.buckets[key] = b
	}
	b.seen = now

	res := b.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return Decision{Allowed: false, Limit: b.limit, RetryAfter: delay}
	}

	return Decision{
		Allowed:   true,
		Limit:     b.limit,
		Remaining: int(b.limiter.TokensAt(now)),
	}
}

func (l *Limiter) sweepLocked(now time.Time) {
	if l.cfg.IdleTTL <= 0 || now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) >= l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
