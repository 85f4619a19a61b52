package security

import (
	"testing"
	"time"

	"clippie/media-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = model.Identity{
	ID:       "64b0c8a59d3e2f0001a1b2c3",
	Username: "jane",
	Email:    "jane@example.com",
}

func TestIssueResolveRoundTrip(t *testing.T) {
	s := NewSessions("test-secret")

	token, err := s.Issue(testIdentity)
	require.NoError(t, err)

	ident, err := s.Resolve(token)
	require.NoError(t, err)

	assert.Equal(t, testIdentity.ID, ident.ID)
	assert.Equal(t, testIdentity.Email, ident.Email)
	assert.Equal(t, testIdentity.Username, ident.Username)
}

func TestResolveExpiredToken(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := NewSessions("test-secret")
	s.SetNow(func() time.Time { return issuedAt })

	token, err := s.Issue(testIdentity)
	require.NoError(t, err)

	// Still fine just inside the window
	s.SetNow(func() time.Time { return issuedAt.Add(DefaultSessionTTL - time.Second) })
	_, err = s.Resolve(token)
	require.NoError(t, err)

	// One second past the 24h lifetime the token is dead
	s.SetNow(func() time.Time { return issuedAt.Add(DefaultSessionTTL + time.Second) })
	_, err = s.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestResolveRejectsTamperedToken(t *testing.T) {
	s := NewSessions("test-secret")

	token, err := s.Issue(testIdentity)
	require.NoError(t, err)

	_, err = s.Resolve(token + "x")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestResolveRejectsForeignSecret(t *testing.T) {
	issuer := NewSessions("secret-a")
	resolver := NewSessions("secret-b")

	token, err := issuer.Issue(testIdentity)
	require.NoError(t, err)

	_, err = resolver.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestResolveGarbage(t *testing.T) {
	s := NewSessions("test-secret")

	_, err := s.Resolve("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}
