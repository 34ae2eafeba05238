package ratelimiter

import (
	"sync"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	now       time.Time
}

// Allowed reports whether the request fit in the bucket.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed requests.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(r.now), 0)
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithCleanupInterval sets how often idle buckets are dropped. Zero disables
// the background loop.
func WithCleanupInterval(d time.Duration) Option {
	return func(l *Limiter) { l.cleanupInterval = d }
}

// Limiter is an in-memory token bucket keyed by an arbitrary string.
type Limiter struct {
	cfg             Config
	now             func() time.Time
	cleanupInterval time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// New validates cfg and starts the cleanup loop. Call Close to stop it.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		cfg:             cfg,
		now:             time.Now,
		cleanupInterval: time.Minute,
		buckets:         make(map[string]*bucket),
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.cleanupInterval > 0 {
		go l.cleanupLoop()
	} else {
		close(l.done)
	}
	return l, nil
}

// Allow takes one token from key's bucket.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}

	intervals := now.Sub(b.lastRefill) / l.cfg.RefillInterval
	// Cap to avoid overflow after long idle periods.
	maxIntervals := time.Duration(l.cfg.Capacity/l.cfg.RefillRate + 1)
	intervals = min(intervals, maxIntervals)
	if intervals > 0 {
		b.tokens = min(b.tokens+int(intervals)*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(intervals * l.cfg.RefillInterval)
		if b.tokens == l.cfg.Capacity {
			b.lastRefill = now
		}
	}
	b.lastAccess = now

	res := Result{Limit: l.cfg.Capacity, ResetAt: b.lastRefill.Add(l.cfg.RefillInterval), now: now}
	if b.tokens <= 0 {
		res.Remaining = -1
		return res
	}
	b.tokens--
	res.Remaining = b.tokens
	return res
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Prune drops buckets idle for longer than Config.IdleTTL.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.cfg.IdleTTL {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Close stops the cleanup loop and waits for it. Safe to call more than once.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}

func (l *Limiter) cleanupLoop() {
	defer close(l.done)

	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Prune()
		case <-l.stop:
			return
		}
	}
}
