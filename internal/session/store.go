// Package session keeps short-lived per-visitor UI state: delete
// confirmations, flash messages and settings. Nothing here survives a restart.
package session

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/settings"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashError   = "error"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = &core.Error{Code: "SESSION_NOT_FOUND", Message: "session not found"}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// Session is the state attached to one browser.
type Session struct {
	ID            string
	Confirmations map[string]bool
	Flashes       []Flash
	Settings      settings.Settings
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Confirming reports whether a delete confirmation is pending for pageID.
func (s *Session) Confirming(pageID string) bool {
	return s.Confirmations[pageID]
}

// AddFlash queues a message for the next page view.
func (s *Session) AddFlash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
}

func (s *Session) clone() *Session {
	c := *s
	c.Confirmations = maps.Clone(s.Confirmations)
	c.Flashes = slices.Clone(s.Flashes)
	c.Settings.NotificationTypes = slices.Clone(s.Settings.NotificationTypes)
	return &c
}

// Store manages sessions in memory.
type Store struct {
	sessions map[string]*Session
	order    []string // creation order for eviction
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

// NewStore creates a store holding at most maxSize sessions, each expiring
// ttl after its last update.
func NewStore(maxSize int, ttl time.Duration) *Store {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Store{
		sessions: make(map[string]*Session),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session with default settings.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpired()

	now := s.now()
	sess := &Session{
		ID:            uuid.NewString(),
		Confirmations: make(map[string]bool),
		Settings:      settings.Defaults(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Evict oldest if at capacity
	for len(s.sessions) >= s.maxSize && len(s.order) > 0 {
		oldest := s.order[0]
		delete(s.sessions, oldest)
		s.order = s.order[1:]
	}

	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)

	return sess.clone()
}

// Get returns a copy of the session.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(id)
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// Update modifies a session in place and refreshes its expiry.
func (s *Store) Update(id string, fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(id)
	if !ok {
		return ErrNotFound
	}

	fn(sess)
	sess.UpdatedAt = s.now()
	return nil
}

// TakeFlashes returns and clears the session's pending messages.
func (s *Store) TakeFlashes(id string) []Flash {
	var flashes []Flash
	s.Update(id, func(sess *Session) {
		flashes = sess.Flashes
		sess.Flashes = nil
	})
	return flashes
}

// Delete ends a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpired()
	return len(s.sessions)
}

func (s *Store) live(id string) (*Session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(sess) {
		s.remove(id)
		return nil, false
	}
	return sess, true
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}

func (s *Store) purgeExpired() {
	for _, id := range slices.Clone(s.order) {
		if s.expired(s.sessions[id]) {
			s.remove(id)
		}
	}
}

func (s *Store) remove(id string) {
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}
