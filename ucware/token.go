package ucware

import (
	"os"
	"strings"
	"sync"

	"braces.dev/errtrace"
)

// TokenStore holds the API bearer token and persists it to a file so a
// refreshed token survives restarts.
type TokenStore struct {
	mu    sync.RWMutex
	token string
	path  string
}

// NewTokenStore creates a store seeded with the given token and writes it
// to path.
func NewTokenStore(path, token string) (*TokenStore, error) {
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &TokenStore{token: token, path: path}, nil
}

// OpenTokenStore loads a previously stored token from path. It reports
// fs.ErrNotExist when no store exists yet.
func OpenTokenStore(path string) (*TokenStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &TokenStore{token: strings.TrimSpace(string(data)), path: path}, nil
}

// Get returns the current token.
func (s *TokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Update replaces the token and persists it. Unchanged tokens are not
// rewritten.
func (s *TokenStore) Update(next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == next {
		return nil
	}
	if err := os.WriteFile(s.path, []byte(next), 0o600); err != nil {
		return errtrace.Wrap(err)
	}
	s.token = next
	return nil
}
