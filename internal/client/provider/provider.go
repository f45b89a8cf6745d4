// Package provider declares the remote services the shell depends on: the
// auth provider, the document store and the fun fact source.
package provider

import (
	"context"
	"errors"
	"time"
)

// Session is the signed-in account. It is passed explicitly to every call
// that needs an identity and dropped on sign-out. Providers may renew the
// token pair in place.
type Session struct {
	AccountID    string
	Email        string
	AccessToken  string
	RefreshToken string
	// ExpiresAt is when AccessToken stops being accepted. Zero means unknown.
	ExpiresAt time.Time
}

// Expired reports whether the access token is unusable at now, treating
// tokens within skew of their expiry as already expired.
func (s *Session) Expired(now time.Time, skew time.Duration) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(s.ExpiresAt)
}

type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, sess *Session) error
}

type DocumentStore interface {
	// SetDocument overwrites the document stored at (collection, key).
	SetDocument(ctx context.Context, sess *Session, collection, key string, fields map[string]interface{}) error
}

type FactSource interface {
	// FetchFact returns "" with a nil error when the provider had no fact.
	FetchFact(ctx context.Context, sess *Session) (string, error)
}

// Error is a failure reported by a provider as {code, message}.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Message returns the text to show a user for err: the provider message when
// there is one, the error text otherwise.
func Message(err error) string {
	var perr *Error
	if errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
