package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront-core/internal/infrastructure/sessionstore"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredential = errors.New("invalid bearer credential")
	ErrExpiredCredential = errors.New("bearer credential has expired")
)

// BearerClaims are the claims carried by the backend-issued bearer token.
type BearerClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the resolved identity mode for one operation. Exactly one mode
// is active: Authenticated with a bearer token, or guest with an optional
// locally persisted cart id.
type Identity struct {
	Authenticated bool
	Token         string
	UserID        string
	GuestCartID   string
}

// Resolver decides per operation whether the active identity is guest or
// authenticated, and owns the persisted guest cart identifier. Effect
// handlers treat the identifier as opaque.
type Resolver struct {
	store sessionstore.Store
	now   func() time.Time
}

func NewResolver(store sessionstore.Store) *Resolver {
	return &Resolver{store: store, now: time.Now}
}

// Resolve returns the identity for one operation. For authenticated requests
// the bearer claims are parsed locally (the client holds no signing key, so
// the signature is not verified — the backend stays the authority) purely to
// fail fast on credentials that are already expired.
func (r *Resolver) Resolve(ctx context.Context, isLoggedIn bool, token string) (Identity, error) {
	if isLoggedIn {
		claims, err := r.parseClaims(token)
		if err != nil {
			return Identity{}, err
		}
		return Identity{Authenticated: true, Token: token, UserID: claims.UserID}, nil
	}

	id, ok, err := r.store.Get(ctx, sessionstore.KeyGuestCartID)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to read guest cart id: %w", err)
	}
	if !ok {
		return Identity{}, nil
	}
	return Identity{GuestCartID: id}, nil
}

// GuestCartID returns the persisted guest cart identifier, if any.
func (r *Resolver) GuestCartID(ctx context.Context) (string, bool, error) {
	return r.store.Get(ctx, sessionstore.KeyGuestCartID)
}

// RememberGuestCart persists a server-issued guest cart identifier.
func (r *Resolver) RememberGuestCart(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return r.store.Set(ctx, sessionstore.KeyGuestCartID, id)
}

// ForgetGuestCart discards the persisted identifier. Forgetting when none is
// persisted is a no-op.
func (r *Resolver) ForgetGuestCart(ctx context.Context) error {
	return r.store.Delete(ctx, sessionstore.KeyGuestCartID)
}

func (r *Resolver) parseClaims(token string) (*BearerClaims, error) {
	claims := &BearerClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidCredential
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(r.now()) {
		return nil, ErrExpiredCredential
	}
	return claims, nil
}
