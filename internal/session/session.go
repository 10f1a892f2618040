// Package session models the caller's authenticated session as an injected
// capability rather than ambient global state, so API clients stay testable
// without a real sign-in.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired is returned when the session credential is past its expiry.
var ErrExpired = errors.New("session: token expired")

// TokenSource supplies the bearer credential for scheduling API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Static is a fixed-token source, used for opaque API tokens.
type Static struct {
	token string
}

// NewStatic wraps a fixed token.
func NewStatic(token string) *Static {
	return &Static{token: token}
}

func (s *Static) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

// Anonymous returns a source that sends no credential. Useful against the
// local demo server.
func Anonymous() TokenSource {
	return &Static{}
}

// JWT holds a JWT session credential and refuses to hand it out once the
// embedded expiry has passed. The signature is not verified here; the
// server is the authority, this only avoids sending known-dead tokens.
type JWT struct {
	token string
	exp   time.Time
	now   func() time.Time
}

// NewJWT parses the token's registered claims for an expiry. Tokens without
// an exp claim never expire locally.
func NewJWT(token string) (*JWT, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, errors.New("session: malformed jwt")
	}
	j := &JWT{token: token, now: time.Now}
	if claims.ExpiresAt != nil {
		j.exp = claims.ExpiresAt.Time
	}
	return j, nil
}

func (j *JWT) Token(ctx context.Context) (string, error) {
	if !j.exp.IsZero() && !j.now().Before(j.exp) {
		return "", ErrExpired
	}
	return j.token, nil
}

// ExpiresAt reports the token's embedded expiry, zero when absent.
func (j *JWT) ExpiresAt() time.Time {
	return j.exp
}
