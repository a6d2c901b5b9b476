// Package session holds the dashboard's current-user identity. The identity
// is a swappable demo value, never persisted, and always passed explicitly
// to the visibility filter and assignment workflow rather than read as
// ambient global state.
package session

import (
	"sync"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Session holds zero or one current user.
type Session struct {
	mu      sync.RWMutex
	current *domain.User
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Current returns a copy of the current user, or nil when none is set.
// Callers hand the result to FilterTickets / CreateCommentWithAssignment so
// those stay pure with respect to session state.
func (s *Session) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Set replaces the current user.
func (s *Session) Set(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &user
}

// Clear removes the current user. Visibility decisions fail closed while no
// user is set.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
