package incognito

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aluminumlabs/incognito/pkg/logger"
	"github.com/aluminumlabs/incognito/pkg/secrets"
)

// maxIDAttempts bounds retries when a generated id collides with a live one.
const maxIDAttempts = 8

// Manager owns the set of live sessions and the background reaper.
//
// Lock order: the table lock is never acquired while a session lock is held.
// The reaper snapshots the table, releases it, then locks sessions one at a
// time.
type Manager struct {
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
	newID      func() (string, error)
	processKey []byte

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool

	reaper *reaper
}

// New validates cfg, applies options and starts the reaper.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:      cfg,
		logger:   logger.NewNop(),
		now:      time.Now,
		newID:    NewID,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.processKey == nil {
		key, err := secrets.GenerateKey()
		if err != nil {
			return nil, errors.Join(ErrSessionKey, err)
		}
		m.processKey = key
	}
	if len(m.processKey) != secrets.KeySize {
		return nil, errors.Join(ErrInvalidConfig, secrets.ErrInvalidProcessKey)
	}

	m.logger = m.logger.With(logger.Component("incognito"))
	m.reaper = startReaper(cfg.ReaperInterval, m.reap)

	return m, nil
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() Config {
	return m.cfg
}

// StartSession creates an empty session and returns its id.
func (m *Manager) StartSession() (string, error) {
	sealer, err := secrets.NewSessionSealer(m.processKey)
	if err != nil {
		return "", errors.Join(ErrSessionKey, err)
	}

	for range maxIDAttempts {
		id, err := m.newID()
		if err != nil {
			sealer.Destroy()
			return "", err
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			sealer.Destroy()
			return "", ErrManagerClosed
		}
		if _, taken := m.sessions[id]; taken {
			m.mu.Unlock()
			continue
		}
		m.sessions[id] = newSession(id, m.cfg, m.now, sealer)
		m.mu.Unlock()

		m.logger.Debug("session started", logger.SessionID(id))
		return id, nil
	}

	sealer.Destroy()
	return "", errors.Join(ErrIDGeneration, errors.New("id collided with a live session"))
}

// EndSession removes the session and drops all of its state.
// Unknown or already ended ids are ignored.
func (m *Manager) EndSession(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return
	}

	s.mu.Lock()
	s.destroy()
	s.mu.Unlock()

	m.logger.Debug("session ended", logger.SessionID(id))
}

// WithSession runs fn with exclusive access to the session and returns fn's
// error. ErrSessionNotFound is returned if the id is unknown or the session
// ended before the lock was acquired.
//
// fn must not call back into the Manager.
func (m *Manager) WithSession(id string, fn func(*Session) error) error {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return ErrSessionNotFound
	}
	return fn(s)
}

// Sessions returns the ids of all live sessions in no particular order.
func (m *Manager) Sessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Ping returns ErrManagerClosed once Close has been called.
func (m *Manager) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrManagerClosed
	}
	return nil
}

// Sweep runs one reaper pass immediately and returns what it removed.
func (m *Manager) Sweep() SweepResult {
	return m.sweepAll()
}

// Close stops the reaper, waits for it to exit and ends every session.
// It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.reaper.Stop()

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.mu.Lock()
		s.destroy()
		s.mu.Unlock()
	}

	m.logger.Debug("manager closed", slog.Int("sessions", len(sessions)))
	return nil
}

func (m *Manager) snapshot() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

func (m *Manager) sweepAll() SweepResult {
	var total SweepResult
	for _, s := range m.snapshot() {
		s.mu.Lock()
		if !s.ended {
			total = total.add(s.Sweep(m.now()))
		}
		s.mu.Unlock()
	}
	return total
}

func (m *Manager) reap() {
	start := time.Now()
	res := m.sweepAll()
	if res.Empty() {
		return
	}
	m.logger.Debug("reaper sweep",
		slog.Int("cookies_removed", res.Cookies),
		slog.Int("visits_removed", res.Visits),
		logger.Duration(time.Since(start)),
	)
}
