package ratelimiter

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

// KeyFunc extracts the bucket key from a request.
type KeyFunc func(r *http.Request) string

// RemoteIP keys requests by the peer address of the connection. Forwarding
// headers are ignored since they are client controlled.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the limit by calling denied, or responding
// 429 when denied is nil. Rate limit headers are set on every response.
func Middleware(l *Limiter, key KeyFunc, denied http.Handler) func(http.Handler) http.Handler {
	if key == nil {
		key = RemoteIP
	}
	if denied == nil {
		denied = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := l.Allow(key(r))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				secs := int(math.Ceil(res.RetryAfter().Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(1, secs)))
				denied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
