package incognito

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithLogger sets the logger. Nil keeps the default no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces time.Now. Every expiry decision reads this clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator replaces the session id generator.
// fn must never return an id it has returned before in the same process.
// StartSession only retries ids that collide with a live session, so a
// reissued id of an ended session would be handed out again.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithProcessKey sets the 32-byte key that per-session sealing keys are
// derived from. A random key is generated when omitted.
func WithProcessKey(key []byte) Option {
	return func(m *Manager) {
		m.processKey = key
	}
}
