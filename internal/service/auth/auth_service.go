package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"github.com/vertexcare/clinicbook/config"
	"github.com/vertexcare/clinicbook/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type SessionAuthority interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Session, error)
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	Invalidate(ctx context.Context, token string) error
	Authorize(session *domain.Session) bool
}

type SessionStore interface {
	Put(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// Authority issues and validates the single shared admin session. Credentials
// come from configuration; there is one admin identity and no lockout.
type Authority struct {
	store SessionStore
	creds config.AdminConfig
	ttl   time.Duration
}

func NewAuthority(store SessionStore, creds config.AdminConfig, ttl time.Duration) *Authority {
	return &Authority{store: store, creds: creds, ttl: ttl}
}

// Authenticate checks the configured credentials and issues a fresh session
// with a fixed expiry. A mismatch never reveals which field was wrong.
func (a *Authority) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	if !a.credentialsMatch(username, password) {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		IsAdmin:   true,
		ExpiresAt: time.Now().Add(a.ttl),
	}
	if err := a.store.Put(ctx, session, a.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

func (a *Authority) credentialsMatch(username, password string) bool {
	if a.creds.Username == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1

	var passOK bool
	if a.creds.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.creds.PasswordHash), []byte(password)) == nil
	} else {
		passOK = a.creds.Password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	}

	return userOK && passOK
}

// Resolve looks the token up in the session store. A missing or expired
// session resolves to nil without error; callers gate on Authorize.
func (a *Authority) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	return a.store.Get(ctx, token)
}

func (a *Authority) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.store.Delete(ctx, token)
}

// Authorize is a pure predicate over the session value. The store TTL
// already evicts expired sessions; the ExpiresAt check covers clock skew
// between issuance and eviction.
func (a *Authority) Authorize(session *domain.Session) bool {
	return session != nil && session.IsAdmin && !session.Expired()
}

var _ SessionAuthority = (*Authority)(nil)
