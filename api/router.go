package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aluminumlabs/incognito/pkg/httpserver"
	"github.com/aluminumlabs/incognito/pkg/incognito"
	"github.com/aluminumlabs/incognito/pkg/logger"
	"github.com/aluminumlabs/incognito/pkg/ratelimiter"
	"github.com/aluminumlabs/incognito/pkg/requestid"
)

// CacheHeader reports how a fetch was served: hit, miss or uncacheable.
const CacheHeader = "X-Incognito-Cache"

const defaultMaxBodyBytes = 64 << 10

// Option configures the API.
type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSessionLimiter rate limits POST /sessions per peer address.
func WithSessionLimiter(l *ratelimiter.Limiter) Option {
	return func(a *API) { a.sessionLimiter = l }
}

// WithMaxBodyBytes limits JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodyBytes = n
		}
	}
}

// API serves the session facade over HTTP.
type API struct {
	facade         *incognito.Facade
	logger         *slog.Logger
	maxBodyBytes   int64
	sessionLimiter *ratelimiter.Limiter
}

// New panics on a nil facade.
func New(f *incognito.Facade, opts ...Option) *API {
	if f == nil {
		panic("api: facade is required")
	}
	a := &API{
		facade:       f,
		logger:       logger.NewNop(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logger.Component("api"))
	return a
}

// Handler returns the routed handler with request id, recovery and access
// logging middleware.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(a.accessLog)
	r.Use(middleware.SetHeader("Cache-Control", "no-store"))

	r.NotFound(a.wrap(func(*http.Request) Response { return JSONError(errNotFound) }))
	r.MethodNotAllowed(a.wrap(func(*http.Request) Response { return JSONError(errMethodNotAllowed) }))

	r.Get("/healthz", httpserver.HealthCheckHandler(a.logger))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.logger, a.facade.Ping))

	r.Route("/sessions", func(r chi.Router) {
		r.With(a.limitSessions).Post("/", a.wrap(a.startSession))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.wrap(a.report))
			r.Delete("/", a.wrap(a.endSession))

			r.Delete("/cookies", a.wrap(a.clearCookies))
			r.Put("/cookies/{name}", a.wrap(a.setCookie))
			r.Get("/cookies/{name}", a.wrap(a.getCookie))

			r.Delete("/data", a.wrap(a.clearData))
			r.Put("/data/{key}", a.wrap(a.setData))
			r.Get("/data/{key}", a.wrap(a.getData))

			r.Get("/history", a.wrap(a.history))
			r.Delete("/history", a.wrap(a.clearHistory))

			r.Post("/fetch", a.wrap(a.fetch))
		})
	})

	return r
}

func (a *API) limitSessions(next http.Handler) http.Handler {
	if a.sessionLimiter == nil {
		return next
	}
	denied := a.wrap(func(*http.Request) Response { return JSONError(errRateLimited) })
	return ratelimiter.Middleware(a.sessionLimiter, ratelimiter.RemoteIP, denied)(next)
}

type handlerFunc func(r *http.Request) Response

func (a *API) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if resp == nil {
			resp = NoContent()
		}
		if err := resp.Render(w, r); err != nil {
			a.logger.DebugContext(r.Context(), "render response", logger.Error(err))
		}
	}
}

// accessLog logs the route pattern rather than the path so that session ids
// and cookie names stay out of the logs.
func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		a.logger.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}
