package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("board not found")

type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time
	log           zerolog.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type Option func(*SessionManager)

// WithTTL sets how long a board may stay idle before it is swept.
func WithTTL(ttl time.Duration) Option {
	return func(m *SessionManager) { m.ttl = ttl }
}

// WithSweepInterval sets the sweep period. Zero disables the background
// sweeper; Sweep can still be called directly.
func WithSweepInterval(d time.Duration) Option {
	return func(m *SessionManager) { m.sweepInterval = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(log zerolog.Logger, opts ...Option) *SessionManager {
	m := &SessionManager{
		sessions:      make(map[string]*Session),
		ttl:           2 * time.Hour,
		sweepInterval: time.Minute,
		now:           time.Now,
		log:           log,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.sweepInterval > 0 {
		go m.processSweeps()
	} else {
		close(m.done)
	}
	return m
}

func (m *SessionManager) processSweeps() {
	defer close(m.done)
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-m.stop:
			return
		}
	}
}

// Sweep drops sessions with no connected clients that have been idle for
// longer than the TTL and returns how many were dropped.
func (m *SessionManager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.ClientCount() == 0 && s.LastActive().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.closeClients()
	}
	if len(expired) > 0 {
		m.log.Info().Int("expired", len(expired)).Int("remaining", m.Len()).Msg("swept idle boards")
	}
	return len(expired)
}

func (m *SessionManager) Create() *Session {
	s := newSession(uuid.New().String(), m.log, m.now)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info().Str("board", s.ID).Msg("board created")
	return s
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	s, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}
	s.closeClients()
	m.log.Info().Str("board", id).Msg("board deleted")
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the sweeper and disconnects every client.
func (m *SessionManager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
		<-m.done

		m.mu.Lock()
		sessions := m.sessions
		m.sessions = make(map[string]*Session)
		m.mu.Unlock()

		for _, s := range sessions {
			s.closeClients()
		}
	})
}
