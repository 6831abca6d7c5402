package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"art-space/pkg/viewer"
)

// ErrSessionNotFound is returned for an unknown or expired session id
var ErrSessionNotFound = errors.New("session not found")

// SessionService owns the viewer state of every open web screen.
//
// A session is opened when a screen is first displayed and is discarded when
// it is closed or has been idle for the configured TTL. Positions are never
// persisted.
type SessionService struct {
	size     int
	ttl      time.Duration
	sessions *cache.Cache
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewSessionService creates a session store for a catalog of size entries
func NewSessionService(size int, ttl time.Duration, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionService{
		size:     size,
		ttl:      ttl,
		sessions: cache.New(ttl, ttl/2+time.Second),
		logger:   logger,
	}
	s.sessions.OnEvicted(func(id string, _ interface{}) {
		s.logger.Debug("Session discarded", zap.String("session", id))
	})
	return s
}

// Open creates a session positioned on the first artwork
func (s *SessionService) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions.Set(id, viewer.NewState(s.size), cache.DefaultExpiration)
	s.mu.Unlock()
	s.logger.Debug("Session opened", zap.String("session", id))
	return id
}

// Ensure returns id when it names a live session, otherwise it opens a new one
func (s *SessionService) Ensure(id string) (string, bool) {
	if id != "" {
		if _, err := s.Position(id); err == nil {
			return id, false
		}
	}
	return s.Open(), true
}

// Position returns the current position of a session
func (s *SessionService) Position(id string) (int, error) {
	var pos int
	err := s.with(id, func(st *viewer.State) { pos = st.Position() })
	return pos, err
}

// Next advances a session and returns its new position
func (s *SessionService) Next(id string) (int, error) {
	var pos int
	err := s.with(id, func(st *viewer.State) { pos = st.Next() })
	return pos, err
}

// Previous moves a session back and returns its new position
func (s *SessionService) Previous(id string) (int, error) {
	var pos int
	err := s.with(id, func(st *viewer.State) { pos = st.Previous() })
	return pos, err
}

// Set moves a session to a given position, clamped to the catalog
func (s *SessionService) Set(id string, position int) (int, error) {
	var pos int
	err := s.with(id, func(st *viewer.State) { pos = st.Set(position) })
	return pos, err
}

// Close discards a session
func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.sessions.Get(id); !found {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.sessions.Delete(id)
	return nil
}

// Count returns the number of live sessions. Expired sessions the janitor has
// not cleaned up yet are not counted.
func (s *SessionService) Count() int {
	return len(s.sessions.Items())
}

// with runs fn on the state of id and refreshes its idle expiry
func (s *SessionService) with(id string, fn func(*viewer.State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.sessions.Get(id)
	if !found {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	st := v.(*viewer.State)
	fn(st)
	s.sessions.Set(id, st, cache.DefaultExpiration)
	return nil
}
