package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/aluminumlabs/incognito/pkg/logger"
)

// Option configures Server.
type Option func(*Server)

// WithLogger sets the server logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStopHook registers fn to run after the listener has shut down.
func WithStopHook(fn func()) Option {
	return func(s *Server) {
		if fn != nil {
			s.stopHooks = append(s.stopHooks, fn)
		}
	}
}

// Server wraps http.Server with context driven graceful shutdown.
type Server struct {
	cfg       Config
	logger    *slog.Logger
	stopHooks []func()

	mu       sync.Mutex
	srv      *http.Server
	addr     net.Addr
	ready    chan struct{}
	shutOnce sync.Once
	shutErr  error
}

// New returns a Server for cfg. Zero fields take DefaultConfig values.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg.withDefaults(),
		logger: logger.NewNop(),
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("httpserver"))
	return s
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound listener address, or nil before Ready.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run binds the listener and serves handler until ctx is done or Shutdown
// is called. Bind failures are returned wrapped with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()
	close(s.ready)

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.Shutdown(context.Background())
		if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			runErr = errors.Join(runErr, serveErr)
		}
	case serveErr := <-errCh:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			runErr = errors.Join(ErrStart, serveErr)
		}
		// Shutdown was called directly; wait for its hooks.
		if errors.Is(serveErr, http.ErrServerClosed) {
			runErr = s.Shutdown(context.Background())
		}
	}
	return runErr
}

// Shutdown gracefully stops the server within Config.ShutdownTimeout.
// Repeated calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.shutOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.InfoContext(ctx, "http server shutting down")
		if err := srv.Shutdown(ctx); err != nil {
			s.shutErr = errors.Join(ErrShutdown, err)
			s.logger.ErrorContext(ctx, "http server shutdown failed", logger.Error(err))
		}
		for _, fn := range s.stopHooks {
			fn()
		}
	})
	return s.shutErr
}
