package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aluminumlabs/incognito/pkg/ratelimiter"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Limiter, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l, err := ratelimiter.New(cfg, ratelimiter.WithClock(c.Now), ratelimiter.WithCleanupInterval(0))
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l, c
}

func smallConfig() ratelimiter.Config {
	return ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Second, IdleTTL: time.Minute}
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()
	l, c := newLimiter(t, smallConfig())

	r := l.Allow("a")
	assert.True(t, r.Allowed())
	assert.Equal(t, 1, r.Remaining)
	assert.Equal(t, 2, r.Limit)

	r = l.Allow("a")
	assert.True(t, r.Allowed())
	assert.Equal(t, 0, r.Remaining)

	r = l.Allow("a")
	assert.False(t, r.Allowed())
	assert.Equal(t, time.Second, r.RetryAfter())

	assert.True(t, l.Allow("b").Allowed(), "keys are independent")

	c.Advance(time.Second)
	r = l.Allow("a")
	assert.True(t, r.Allowed())
	assert.Equal(t, 0, r.Remaining)

	c.Advance(time.Hour)
	r = l.Allow("a")
	assert.True(t, r.Allowed())
	assert.Equal(t, 1, r.Remaining, "refill is capped at capacity")
}

func TestLimiter_Prune(t *testing.T) {
	t.Parallel()
	l, c := newLimiter(t, smallConfig())

	l.Allow("a")
	c.Advance(30 * time.Second)
	l.Allow("b")
	c.Advance(45 * time.Second)

	assert.Equal(t, 1, l.Prune())
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_CleanupLoop(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	cfg.IdleTTL = time.Nanosecond
	l, err := ratelimiter.New(cfg, ratelimiter.WithCleanupInterval(time.Millisecond))
	require.NoError(t, err)

	l.Allow("a")
	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, time.Millisecond)
	l.Close()
	l.Close()
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	for name, mutate := range map[string]func(*ratelimiter.Config){
		"capacity": func(c *ratelimiter.Config) { c.Capacity = 0 },
		"rate":     func(c *ratelimiter.Config) { c.RefillRate = -1 },
		"interval": func(c *ratelimiter.Config) { c.RefillInterval = 0 },
		"idle":     func(c *ratelimiter.Config) { c.IdleTTL = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := ratelimiter.DefaultConfig()
			mutate(&cfg)
			_, err := ratelimiter.New(cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, smallConfig())

	handler := ratelimiter.Middleware(l, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1000").Code)
	rec := do("10.0.0.1:2000")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do("10.0.0.1:3000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, do("10.0.0.2:1000").Code)
}

func TestRemoteIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "2001:db8::1", ratelimiter.RemoteIP(req))

	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", ratelimiter.RemoteIP(req))
}
