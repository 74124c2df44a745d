// Package auth guards the admin back-office with a single configured
// account and in-memory session tokens.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when email or password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks login attempts against one admin account.
type Authenticator struct {
	email    string
	password string
}

// NewAuthenticator creates an authenticator for the given account.
func NewAuthenticator(email, password string) *Authenticator {
	return &Authenticator{
		email:    strings.ToLower(strings.TrimSpace(email)),
		password: password,
	}
}

// Check returns ErrInvalidCredentials unless both fields match. The email
// comparison ignores case and surrounding spaces.
func (a *Authenticator) Check(email, password string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(a.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}

// Sessions issues and validates opaque session tokens.
type Sessions struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewSessions creates a session store whose tokens expire after ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]time.Time),
	}
}

// Create issues a new token and drops every expired one.
func (s *Sessions) Create() (token string, expires time.Time) {
	token = uuid.NewString()
	now := s.now()
	expires = now.Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for t, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = expires
	return token, expires
}

// Valid reports whether token exists and has not expired. Expired tokens
// are dropped.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.tokens[token]
	if !ok {
		return false
	}
	if !s.now().Before(expires) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke removes a token. Unknown tokens are ignored.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Active returns the number of unexpired sessions.
func (s *Sessions) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for token, expires := range s.tokens {
		if now.Before(expires) {
			n++
		} else {
			delete(s.tokens, token)
		}
	}
	return n
}
