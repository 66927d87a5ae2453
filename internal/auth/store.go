// Package auth implements the OAuth flows the accounts service supports
// and the token lifecycle around them: a thread-safe token store and a
// token manager that refreshes stale tokens before requests go out.
package auth

import (
	"sync"

	"github.com/ry-sev/spotify-web-api/pkg/spotify"
)

// TokenStore holds the current token behind a read-write mutex.
type TokenStore struct {
	mutex sync.RWMutex
	token *spotify.Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil when none is set. The returned
// token must be treated as read-only.
func (s *TokenStore) Get() *spotify.Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *spotify.Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}
