package incognito

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/aluminumlabs/incognito/pkg/cache"
	"github.com/aluminumlabs/incognito/pkg/secrets"
)

// Visit is one history entry.
type Visit struct {
	URL       string    `json:"url"`
	VisitedAt time.Time `json:"visited_at"`
}

// CacheStatus tells how FetchCached satisfied a request.
type CacheStatus string

const (
	CacheHit  CacheStatus = "hit"
	CacheMiss CacheStatus = "miss"
	// CacheSkipped means the body was fetched but is too large to cache.
	CacheSkipped CacheStatus = "uncacheable"
)

// FetchResult is the detailed outcome of Session.Fetch.
type FetchResult struct {
	Body   []byte
	Status CacheStatus
}

// SweepResult counts entries physically removed by a sweep.
type SweepResult struct {
	Cookies int
	Visits  int
}

func (r SweepResult) add(o SweepResult) SweepResult {
	return SweepResult{Cookies: r.Cookies + o.Cookies, Visits: r.Visits + o.Visits}
}

// Empty reports whether nothing was removed.
func (r SweepResult) Empty() bool {
	return r.Cookies == 0 && r.Visits == 0
}

type cookie struct {
	sealed    []byte
	expiresAt time.Time
}

// Session is one private-browsing context: a cookie jar, a history log and a
// response cache.
//
// Session methods are only reachable through Manager.WithSession, which holds
// the session lock for the duration of the callback. A *Session must not be
// retained after the callback returns.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	now       func() time.Time

	cookieLifetime   time.Duration
	historyRetention time.Duration

	cookies map[string]cookie
	data    map[string][]byte
	history []Visit
	cache   *cache.LRUCache[string]
	sealer  *secrets.Sealer

	hits      int
	misses    int
	evictions int

	ended bool
}

func newSession(id string, cfg Config, now func() time.Time, sealer *secrets.Sealer) *Session {
	s := &Session{
		id:               id,
		createdAt:        now(),
		now:              now,
		cookieLifetime:   cfg.CookieLifetime,
		historyRetention: cfg.HistoryRetention,
		cookies:          make(map[string]cookie),
		data:             make(map[string][]byte),
		cache:            cache.NewLRUCache[string](cfg.CacheCapacity),
		sealer:           sealer,
	}
	s.cache.SetEvictCallback(func(string, []byte) { s.evictions++ })
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// SetCookie stores value under name, expiring CookieLifetime from now.
// An existing cookie of the same name is replaced and its expiry reset.
func (s *Session) SetCookie(name, value string) error {
	sealed, err := s.sealer.SealString(value)
	if err != nil {
		return err
	}
	s.cookies[name] = cookie{sealed: sealed, expiresAt: s.now().Add(s.cookieLifetime)}
	return nil
}

// Cookie returns the value stored under name. A cookie whose expiry has been
// reached is reported absent even if no sweep has removed it yet.
func (s *Session) Cookie(name string) (string, bool, error) {
	c, ok := s.cookies[name]
	if !ok || !s.now().Before(c.expiresAt) {
		return "", false, nil
	}
	value, err := s.sealer.OpenString(c.sealed)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// DeleteCookie removes a cookie. Missing names are ignored.
func (s *Session) DeleteCookie(name string) {
	delete(s.cookies, name)
}

// ClearCookies drops every cookie.
func (s *Session) ClearCookies() {
	clear(s.cookies)
}

// SetData stores an arbitrary value under key. Unlike cookies, data has no
// lifetime and lives until ClearData or the end of the session.
func (s *Session) SetData(key string, value []byte) error {
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return err
	}
	if old, ok := s.data[key]; ok {
		clear(old)
	}
	s.data[key] = sealed
	return nil
}

// Data returns the value stored under key.
func (s *Session) Data(key string) ([]byte, bool, error) {
	sealed, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	value, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *Session) DeleteData(key string) {
	if sealed, ok := s.data[key]; ok {
		clear(sealed)
		delete(s.data, key)
	}
}

// ClearData drops every stored value.
func (s *Session) ClearData() {
	for _, sealed := range s.data {
		clear(sealed)
	}
	clear(s.data)
}

// RecordVisit appends url to the history with the current time.
func (s *Session) RecordVisit(url string) {
	s.history = append(s.history, Visit{URL: url, VisitedAt: s.now()})
}

// History returns the URLs visited within the retention window, oldest first.
// Entries past the window are filtered here even before a sweep prunes them.
func (s *Session) History() []string {
	visits := s.HistoryEntries()
	urls := make([]string, len(visits))
	for i, v := range visits {
		urls[i] = v.URL
	}
	return urls
}

// HistoryEntries is History with timestamps.
func (s *Session) HistoryEntries() []Visit {
	now := s.now()
	visits := make([]Visit, 0, len(s.history))
	for _, v := range s.history {
		if s.visible(v, now) {
			visits = append(visits, v)
		}
	}
	return visits
}

// ClearHistory drops every history entry.
func (s *Session) ClearHistory() {
	s.history = nil
}

// FetchCached returns the cached body for url, or fetches, caches and records
// a visit. When the body is too large to cache it is returned together with
// ErrCapacityExceeded. Fetch errors are returned unchanged and leave the cache
// and history untouched.
func (s *Session) FetchCached(ctx context.Context, url string, f Fetcher) ([]byte, error) {
	res, err := s.Fetch(ctx, url, f)
	return res.Body, err
}

// Fetch is FetchCached reporting how the request was satisfied.
//
// The fetcher runs with the session lock held, so other calls on this session
// wait for it. Other sessions are unaffected.
func (s *Session) Fetch(ctx context.Context, url string, f Fetcher) (FetchResult, error) {
	if body, ok := s.cache.Get(url); ok {
		s.hits++
		return FetchResult{Body: bytes.Clone(body), Status: CacheHit}, nil
	}

	body, err := f.Fetch(ctx, url)
	if err != nil {
		return FetchResult{}, err
	}
	s.misses++
	s.RecordVisit(url)

	if err := s.cache.Put(url, bytes.Clone(body)); err != nil {
		return FetchResult{Body: body, Status: CacheSkipped}, err
	}
	return FetchResult{Body: body, Status: CacheMiss}, nil
}

// CachedURLs lists cached keys from most to least recently used.
func (s *Session) CachedURLs() []string {
	return s.cache.Keys()
}

// Sweep removes cookies whose expiry is at or before now and history entries
// at least HistoryRetention old. Running it twice with no activity in between
// removes nothing the second time.
func (s *Session) Sweep(now time.Time) SweepResult {
	var res SweepResult

	for name, c := range s.cookies {
		if !now.Before(c.expiresAt) {
			delete(s.cookies, name)
			res.Cookies++
		}
	}

	kept := s.history[:0]
	for _, v := range s.history {
		if s.visible(v, now) {
			kept = append(kept, v)
		}
	}
	res.Visits = len(s.history) - len(kept)
	clear(s.history[len(kept):])
	s.history = kept

	return res
}

// Stats is a point-in-time report of a session.
// Cookies and Visits count stored entries, including expired ones a sweep has
// not removed yet.
type Stats struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	Age            time.Duration `json:"age"`
	Cookies        int           `json:"cookies"`
	Data           int           `json:"data"`
	Visits         int           `json:"visits"`
	CacheEntries   int           `json:"cache_entries"`
	CacheBytes     int64         `json:"cache_bytes"`
	CacheCapacity  int64         `json:"cache_capacity"`
	CacheHits      int           `json:"cache_hits"`
	CacheMisses    int           `json:"cache_misses"`
	CacheEvictions int           `json:"cache_evictions"`
}

func (s *Session) Stats() Stats {
	return Stats{
		ID:             s.id,
		CreatedAt:      s.createdAt,
		Age:            s.now().Sub(s.createdAt),
		Cookies:        len(s.cookies),
		Data:           len(s.data),
		Visits:         len(s.history),
		CacheEntries:   s.cache.Len(),
		CacheBytes:     s.cache.Size(),
		CacheCapacity:  s.cache.Capacity(),
		CacheHits:      s.hits,
		CacheMisses:    s.misses,
		CacheEvictions: s.evictions,
	}
}

func (s *Session) visible(v Visit, now time.Time) bool {
	return now.Sub(v.VisitedAt) < s.historyRetention
}

// destroy drops all state and zeroes the sealing key. Caller holds s.mu.
func (s *Session) destroy() {
	if s.ended {
		return
	}
	s.ended = true
	for _, c := range s.cookies {
		clear(c.sealed)
	}
	s.cookies = nil
	s.ClearData()
	s.data = nil
	clear(s.history)
	s.history = nil
	s.cache.SetEvictCallback(nil)
	s.cache.Clear()
	s.sealer.Destroy()
}
