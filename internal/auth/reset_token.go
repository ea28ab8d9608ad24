package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "fotobox/internal/errors"
)

const (
	// ResetPurpose tags reset tokens so they cannot be replayed as anything else.
	ResetPurpose = "reset-password"
	// ResetTokenMaxAge is the default redemption window.
	ResetTokenMaxAge = time.Hour
)

// ResetClaims is the payload of a password-reset token. The token carries no
// exp claim; age is measured against iat with a window the redeemer chooses,
// so a single issued token can be checked against different windows.
type ResetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// ResetTokenService issues and redeems signed, timestamped password-reset
// tokens. Redemption does not consume a token: it stays valid for repeated
// use until the age window lapses.
type ResetTokenService struct {
	secret []byte
	now    func() time.Time
}

// NewResetTokenService creates a reset token service signing with the given
// secret.
func NewResetTokenService(secret string) *ResetTokenService {
	return &ResetTokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue produces a signed token binding email to the reset purpose.
func (s *ResetTokenService) Issue(email string) (string, error) {
	claims := &ResetClaims{
		Email:   email,
		Purpose: ResetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Redeem validates a token and returns the embedded email. Signature,
// tampering and purpose failures return ErrTokenInvalid; a token older than
// maxAge returns ErrTokenExpired. Callers are expected to collapse both into
// one user-facing message.
func (s *ResetTokenService) Redeem(tokenString string, maxAge time.Duration) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid || claims.Purpose != ResetPurpose || claims.Email == "" {
		return "", apperrors.ErrTokenInvalid
	}
	if claims.IssuedAt == nil {
		return "", apperrors.ErrTokenInvalid
	}
	if s.now().Sub(claims.IssuedAt.Time) > maxAge {
		return "", apperrors.ErrTokenExpired
	}

	return claims.Email, nil
}
