package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront-core/internal/infrastructure/sessionstore"
)

var resolverNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r := NewResolver(sessionstore.NewMemoryStore())
	r.now = func() time.Time { return resolverNow }
	return r
}

func signedToken(t *testing.T, claims BearerClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestResolver_GuestWithoutCartID(t *testing.T) {
	r := newTestResolver(t)

	ident, err := r.Resolve(context.Background(), false, "")
	require.NoError(t, err)
	assert.False(t, ident.Authenticated)
	assert.Empty(t, ident.GuestCartID)
	assert.Empty(t, ident.Token)
}

func TestResolver_GuestCartIDLifecycle(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	require.NoError(t, r.RememberGuestCart(ctx, "gc-1"))

	ident, err := r.Resolve(ctx, false, "")
	require.NoError(t, err)
	assert.Equal(t, "gc-1", ident.GuestCartID)

	id, ok, err := r.GuestCartID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gc-1", id)

	require.NoError(t, r.ForgetGuestCart(ctx))
	_, ok, err = r.GuestCartID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Forgetting twice is harmless
	require.NoError(t, r.ForgetGuestCart(ctx))
}

func TestResolver_RememberEmptyIDIsNoop(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	require.NoError(t, r.RememberGuestCart(ctx, ""))
	_, ok, err := r.GuestCartID(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolver_AuthenticatedWithValidToken(t *testing.T) {
	r := newTestResolver(t)
	token := signedToken(t, BearerClaims{
		UserID: "user-123",
		Email:  "u@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(resolverNow.Add(time.Hour)),
		},
	})

	ident, err := r.Resolve(context.Background(), true, token)
	require.NoError(t, err)
	assert.True(t, ident.Authenticated)
	assert.Equal(t, token, ident.Token)
	assert.Equal(t, "user-123", ident.UserID)
	assert.Empty(t, ident.GuestCartID)
}

func TestResolver_AuthenticatedIgnoresPersistedGuestID(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()
	require.NoError(t, r.RememberGuestCart(ctx, "gc-1"))

	token := signedToken(t, BearerClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(resolverNow.Add(time.Hour)),
		},
	})

	ident, err := r.Resolve(ctx, true, token)
	require.NoError(t, err)
	assert.True(t, ident.Authenticated)
	assert.Empty(t, ident.GuestCartID)

	// The identifier stays persisted for the later merge
	_, ok, err := r.GuestCartID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolver_ExpiredToken(t *testing.T) {
	r := newTestResolver(t)
	token := signedToken(t, BearerClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(resolverNow.Add(-time.Minute)),
		},
	})

	_, err := r.Resolve(context.Background(), true, token)
	assert.ErrorIs(t, err, ErrExpiredCredential)
}

func TestResolver_TokenWithoutExpiryIsAccepted(t *testing.T) {
	r := newTestResolver(t)
	token := signedToken(t, BearerClaims{UserID: "user-123"})

	ident, err := r.Resolve(context.Background(), true, token)
	require.NoError(t, err)
	assert.True(t, ident.Authenticated)
}

func TestResolver_MalformedToken(t *testing.T) {
	r := newTestResolver(t)

	for _, token := range []string{"", "not-a-jwt", "a.b"} {
		_, err := r.Resolve(context.Background(), true, token)
		assert.ErrorIs(t, err, ErrInvalidCredential, "token %q", token)
	}
}
