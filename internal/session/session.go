package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store holds the signed-in admin's bearer token and the identity
// decoded from it. Persisted to a small JSON file so the CLI survives
// process restarts; Clear wipes both memory and file.
type Store struct {
	mu    sync.Mutex
	path  string
	state state
}

type state struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Load reads a previously persisted session if one exists. A missing or
// unreadable file just means signed-out.
func Load(path string) *Store {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return s
	}
	s.state = st
	return s
}

// SetToken stores the bearer token and decodes its claims for the user
// id and expiry. The signature is NOT verified here: the server issued
// the token and verifies it on every request; this side only reads it.
func (s *Store) SetToken(token string) error {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{Token: token, UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		s.state.ExpiresAt = claims.ExpiresAt.Time
	}
	return s.persist()
}

// Token returns the current bearer token, or "" when signed out or
// expired. Safe to call from the transport's TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.ExpiresAt.IsZero() && time.Now().After(s.state.ExpiresAt) {
		return ""
	}
	return s.state.Token
}

func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserID
}

func (s *Store) SignedIn() bool {
	return s.Token() != ""
}

// Clear wipes the session. Called on explicit logout and by the
// transport's 401 hook.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if s.path != "" {
		// a leftover file only holds a token the server already rejects
		_ = os.Remove(s.path)
	}
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}
