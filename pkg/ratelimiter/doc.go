// Package ratelimiter is an in-memory token bucket limiter with HTTP
// middleware.
//
// Each key gets Capacity tokens and regains RefillRate tokens every
// RefillInterval. A background loop drops buckets idle for longer than
// IdleTTL; Close stops it. The incognito API uses it to bound how fast a
// single peer can open sessions, keyed by RemoteIP.
//
//	l, err := ratelimiter.New(ratelimiter.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//	r.With(ratelimiter.Middleware(l, ratelimiter.RemoteIP, nil)).Post("/sessions", h)
package ratelimiter
