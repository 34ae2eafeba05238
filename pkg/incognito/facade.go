package incognito

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aluminumlabs/incognito/pkg/logger"
)

// Facade exposes session-scoped operations to navigation and request-handling
// code. Every call taking an id returns ErrSessionNotFound for unknown or ended
// sessions.
type Facade struct {
	manager *Manager
	fetcher Fetcher
	logger  *slog.Logger
}

// NewFacade panics on a nil manager or fetcher.
func NewFacade(m *Manager, f Fetcher) *Facade {
	if m == nil {
		panic("incognito: manager is required")
	}
	if f == nil {
		panic("incognito: fetcher is required")
	}
	return &Facade{manager: m, fetcher: f, logger: m.logger}
}

func (f *Facade) StartSession() (string, error) {
	return f.manager.StartSession()
}

func (f *Facade) EndSession(id string) {
	f.manager.EndSession(id)
}

func (f *Facade) SetCookie(id, name, value string) error {
	return f.manager.WithSession(id, func(s *Session) error {
		return s.SetCookie(name, value)
	})
}

// GetCookie returns the cookie value and whether it is present and unexpired.
func (f *Facade) GetCookie(id, name string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := f.manager.WithSession(id, func(s *Session) error {
		var err error
		value, found, err = s.Cookie(name)
		return err
	})
	return value, found, err
}

func (f *Facade) ClearCookies(id string) error {
	return f.manager.WithSession(id, func(s *Session) error {
		s.ClearCookies()
		return nil
	})
}

// SetData stores value under key in the session's sealed data store.
func (f *Facade) SetData(id, key string, value []byte) error {
	return f.manager.WithSession(id, func(s *Session) error {
		return s.SetData(key, value)
	})
}

// GetData returns the value stored under key and whether it exists.
func (f *Facade) GetData(id, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := f.manager.WithSession(id, func(s *Session) error {
		var err error
		value, found, err = s.Data(key)
		return err
	})
	return value, found, err
}

func (f *Facade) ClearData(id string) error {
	return f.manager.WithSession(id, func(s *Session) error {
		s.ClearData()
		return nil
	})
}

// GetHistory returns URLs visited within the retention window, oldest first.
func (f *Facade) GetHistory(id string) ([]string, error) {
	var urls []string
	err := f.manager.WithSession(id, func(s *Session) error {
		urls = s.History()
		return nil
	})
	return urls, err
}

func (f *Facade) ClearHistory(id string) error {
	return f.manager.WithSession(id, func(s *Session) error {
		s.ClearHistory()
		return nil
	})
}

// FetchCached returns the body for url from the session cache or the fetcher.
// On ErrCapacityExceeded the returned body is valid but was not cached.
func (f *Facade) FetchCached(ctx context.Context, id, url string) ([]byte, error) {
	res, err := f.Fetch(ctx, id, url)
	return res.Body, err
}

// Fetch is FetchCached reporting the cache outcome.
func (f *Facade) Fetch(ctx context.Context, id, url string) (FetchResult, error) {
	var res FetchResult
	err := f.manager.WithSession(id, func(s *Session) error {
		var err error
		res, err = s.Fetch(ctx, url, f.fetcher)
		return err
	})

	switch {
	case err == nil:
		f.logger.DebugContext(ctx, "fetch",
			logger.SessionID(id), logger.URL(url),
			slog.String("cache", string(res.Status)), logger.Bytes(len(res.Body)))
	case errors.Is(err, ErrCapacityExceeded):
		f.logger.DebugContext(ctx, "response too large to cache",
			logger.SessionID(id), logger.URL(url), logger.Bytes(len(res.Body)))
	case errors.Is(err, ErrSessionNotFound):
	default:
		f.logger.WarnContext(ctx, "fetch failed",
			logger.SessionID(id), logger.URL(url), logger.Error(err))
	}
	return res, err
}

// Report returns session statistics.
func (f *Facade) Report(id string) (Stats, error) {
	var st Stats
	err := f.manager.WithSession(id, func(s *Session) error {
		st = s.Stats()
		return nil
	})
	return st, err
}

// Ping reports whether the facade can still start sessions.
func (f *Facade) Ping(ctx context.Context) error {
	return f.manager.Ping(ctx)
}
