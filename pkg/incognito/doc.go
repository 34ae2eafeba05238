// Package incognito implements ephemeral private-browsing sessions: each
// session isolates a cookie jar, a visited-URL history and a byte-bounded
// response cache, and everything lives in memory only.
//
// # Architecture
//
// A Manager owns the session table and a background reaper. Callers start a
// session, receive an opaque id and then work through a Facade, which routes
// every call to the matching Session via Manager.WithSession.
//
//	caller ──► Facade ──► Manager.WithSession ──► Session (locked)
//	                         ▲
//	reaper (every ReaperInterval) ── Sweep ─┘
//
// # Retention
//
//   - Cookies expire CookieLifetime after they were set. Cookie reads check the
//     expiry themselves, so an expired cookie is invisible even before the
//     reaper removes it.
//   - History entries are visible for HistoryRetention. Reads filter by age
//     as well; the reaper prunes physically.
//   - The response cache has no time-based expiry. It is bounded by
//     CacheCapacity bytes and evicts least recently used bodies.
//
// # Concurrency
//
// The session table has its own RWMutex, held only for insert, remove, lookup
// and snapshot. Each Session has a mutex held for the whole of a WithSession
// callback, including the fetcher call inside FetchCached: concurrent calls on
// the same session queue behind a slow fetch, other sessions do not. The
// reaper takes the table lock to snapshot, releases it, and then locks one
// session at a time.
//
// # Usage
//
//	m, err := incognito.New(incognito.DefaultConfig(), incognito.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	f := incognito.NewFacade(m, fetcher)
//	id, _ := f.StartSession()
//	_ = f.SetCookie(id, "tok", "abc")
//	body, err := f.FetchCached(ctx, id, "https://example.com/")
//	if errors.Is(err, incognito.ErrCapacityExceeded) {
//	    // body is valid, it just was not cached
//	}
//	f.EndSession(id)
//
// # Error Handling
//
//   - ErrSessionNotFound  – id never issued or session ended
//   - ErrCapacityExceeded – body larger than the session cache, returned with the body
//   - ErrInvalidConfig    – non-positive configuration values
//   - ErrManagerClosed    – StartSession after Close
//
// Fetcher errors are returned unchanged.
package incognito
