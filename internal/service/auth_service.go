package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fotobox/internal/auth"
	apperrors "fotobox/internal/errors"
	"fotobox/internal/mail"
	"fotobox/internal/model"
	"fotobox/internal/repository"
)

// AuthService handles registration, login and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (sessionToken string, user *model.User, err error)
	RequestPasswordReset(ctx context.Context, email string) error
	ValidateResetToken(token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	users       repository.UserRepository
	hasher      auth.PasswordHasher
	sessions    *auth.SessionService
	resetTokens *auth.ResetTokenService
	mailer      mail.Mailer
	baseURL     string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	sessions *auth.SessionService,
	resetTokens *auth.ResetTokenService,
	mailer mail.Mailer,
	baseURL string,
) AuthService {
	return &authService{
		users:       users,
		hasher:      hasher,
		sessions:    sessions,
		resetTokens: resetTokens,
		mailer:      mailer,
		baseURL:     baseURL,
	}
}

// Register creates a new user with a hashed password. Duplicate usernames or
// emails surface as ErrDuplicateUser.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return token, user, nil
}

// RequestPasswordReset issues a reset token for a registered email and mails
// the redemption link.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEmailNotRegistered
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.resetTokens.Issue(email)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := s.baseURL + "/reset_password/" + token
	if err := s.mailer.SendPasswordReset(email, user.Username, link); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ValidateResetToken checks a token without redeeming it, so the reset form
// can reject a stale link before the user types a new password.
func (s *authService) ValidateResetToken(token string) error {
	_, err := s.resetTokens.Redeem(token, auth.ResetTokenMaxAge)
	return err
}

// ResetPassword redeems a token and overwrites the bound user's password
// hash. Token errors pass through untouched so handlers can collapse them.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.resetTokens.Redeem(token, auth.ResetTokenMaxAge)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, digest); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
