// Package identity resolves session tokens to user IDs. The core never
// sees credentials; authentication and session issuance belong to an
// external collaborator, and this package only exposes the resolution
// capability the request path needs.
package identity

import (
	"sync"

	"auction-house/utils"
)

// Resolver maps a session token to a user ID, or reports that the
// token is unknown.
type Resolver interface {
	Resolve(token string) (string, bool)
}

// SessionStore is a concurrency-safe in-memory Resolver. Production
// deployments would back this with a shared session service; the
// interface is what the rest of the system depends on.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string // key: token -> userID
}

// NewSessionStore creates a new empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]string),
	}
}

// Issue creates a session for the given user and returns its token
func (s *SessionStore) Issue(userID string) string {
	token := utils.GenerateID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return token
}

// Resolve returns the user ID for a token, if the session exists
func (s *SessionStore) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok
}

// Revoke removes a session. Unknown tokens are ignored.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
