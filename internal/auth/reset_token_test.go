package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fotobox/internal/errors"
)

func TestResetTokenService_IssueAndRedeem(t *testing.T) {
	service := NewResetTokenService("test-secret")

	token, err := service.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := service.Redeem(token, ResetTokenMaxAge)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestResetTokenService_RedeemIsRepeatable(t *testing.T) {
	// Redemption does not consume the token; it stays valid until the
	// window lapses.
	service := NewResetTokenService("test-secret")

	token, err := service.Issue("alice@example.com")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		email, err := service.Redeem(token, ResetTokenMaxAge)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
	}
}

func TestResetTokenService_ExpiredToken(t *testing.T) {
	service := NewResetTokenService("test-secret")

	issued := time.Now()
	service.now = func() time.Time { return issued }

	token, err := service.Issue("alice@example.com")
	require.NoError(t, err)

	// Just inside the window.
	service.now = func() time.Time { return issued.Add(3599 * time.Second) }
	_, err = service.Redeem(token, 3600*time.Second)
	assert.NoError(t, err)

	// One second past the window.
	service.now = func() time.Time { return issued.Add(3601 * time.Second) }
	_, err = service.Redeem(token, 3600*time.Second)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestResetTokenService_InvalidTokens(t *testing.T) {
	service := NewResetTokenService("test-secret")

	valid, err := service.Issue("alice@example.com")
	require.NoError(t, err)

	foreign := NewResetTokenService("other-secret")
	foreignToken, err := foreign.Issue("alice@example.com")
	require.NoError(t, err)

	// A signed token with the wrong purpose must not redeem.
	wrongPurpose := signedToken(t, service.secret, &ResetClaims{
		Email:   "alice@example.com",
		Purpose: "confirm-email",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})

	// A session-style token without the reset payload must not redeem.
	noEmail := signedToken(t, service.secret, &ResetClaims{
		Purpose: ResetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})

	tests := []struct {
		name  string
		token string
	}{
		{name: "tampered signature", token: corruptSignature(valid)},
		{name: "foreign signing key", token: foreignToken},
		{name: "wrong purpose", token: wrongPurpose},
		{name: "missing email", token: noEmail},
		{name: "garbage", token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Redeem(tt.token, ResetTokenMaxAge)
			assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
		})
	}
}

func TestResetTokenService_BindsExactEmail(t *testing.T) {
	service := NewResetTokenService("test-secret")

	aliceToken, err := service.Issue("alice@example.com")
	require.NoError(t, err)
	bobToken, err := service.Issue("bob@example.com")
	require.NoError(t, err)

	email, err := service.Redeem(aliceToken, ResetTokenMaxAge)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	email, err = service.Redeem(bobToken, ResetTokenMaxAge)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}

func signedToken(t *testing.T, secret []byte, claims *ResetClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}
