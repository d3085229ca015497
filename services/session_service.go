package services

import (
	"sync"

	"campuslink_server/models"

	"github.com/google/uuid"
)

// SessionService maps opaque bearer tokens to authenticated identities.
// State is process-local and cleared on restart; the service is injected
// wherever sessions are needed so a shared store can replace it later.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionIdentity
}

// NewSessionService creates an empty session registry
func NewSessionService() *SessionService {
	return &SessionService{sessions: make(map[string]models.SessionIdentity)}
}

// CreateSession issues a fresh unguessable token for the user
func (s *SessionService) CreateSession(userID int, email string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = models.SessionIdentity{UserID: userID, Email: email}
	s.mu.Unlock()
	return token
}

// Resolve returns the identity behind a token, if the token is known
func (s *SessionService) Resolve(token string) (models.SessionIdentity, bool) {
	s.mu.RLock()
	identity, ok := s.sessions[token]
	s.mu.RUnlock()
	return identity, ok
}

// Revoke invalidates a token; revoking an unknown token is a no-op
func (s *SessionService) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
