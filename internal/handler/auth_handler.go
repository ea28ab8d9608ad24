package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fotobox/internal/auth"
	apperrors "fotobox/internal/errors"
	"fotobox/internal/repository"
	"fotobox/internal/service"
)

// AuthHandler handles registration, login, logout and the password-reset
// routes.
type AuthHandler struct {
	authService service.AuthService
	users       repository.UserRepository
	sessions    *auth.SessionService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, users repository.UserRepository, sessions *auth.SessionService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
		sessions:    sessions,
	}
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ForgotPasswordRequest represents a recovery form submission.
type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the new-password form submission.
type ResetPasswordRequest struct {
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// Home renders the app view for an authenticated session and the landing
// page otherwise. Auth is optional here, so the session is resolved by hand
// rather than by the route middleware.
func (h *AuthHandler) Home(c echo.Context) error {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil {
		return renderPage(c, http.StatusOK, "landing", pageData{})
	}
	claims, err := h.sessions.Parse(cookie.Value)
	if err != nil {
		return renderPage(c, http.StatusOK, "landing", pageData{})
	}
	user, err := h.users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		// Session points at a deleted user: fail closed to anonymous.
		return renderPage(c, http.StatusOK, "landing", pageData{})
	}
	return renderPage(c, http.StatusOK, "index", pageData{Username: user.Username})
}

// RegisterForm renders the registration form.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "register", pageData{})
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return renderPage(c, http.StatusBadRequest, "register", pageData{Error: err.Error()})
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return renderPage(c, httpErr.StatusCode, "register", pageData{Error: httpErr.Message})
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "login", pageData{})
}

// Login godoc
// @Summary Log in and establish a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return renderPage(c, http.StatusBadRequest, "login", pageData{Error: err.Error()})
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return renderPage(c, httpErr.StatusCode, "login", pageData{Error: httpErr.Message})
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout godoc
// @Summary Clear the session
// @Tags auth
// @Success 303
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ForgotPasswordForm renders the recovery form.
func (h *AuthHandler) ForgotPasswordForm(c echo.Context) error {
	return renderPage(c, http.StatusOK, "forgot_password", pageData{})
}

// ForgotPassword godoc
// @Summary Send a password recovery email
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Success 200 {string} string
// @Failure 404 {object} errors.ErrorResponse
// @Router /forgot_password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return renderPage(c, http.StatusBadRequest, "forgot_password", pageData{Error: err.Error()})
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return renderPage(c, httpErr.StatusCode, "forgot_password", pageData{Error: httpErr.Message})
	}

	return c.String(http.StatusOK, "A recovery email has been sent with instructions.")
}

// ResetPasswordForm validates the token up front so an expired link shows
// the error before the user types a new password.
func (h *AuthHandler) ResetPasswordForm(c echo.Context) error {
	token := c.Param("token")
	if err := h.authService.ValidateResetToken(token); err != nil {
		return c.String(http.StatusBadRequest, apperrors.TokenErrorMessage)
	}
	return renderPage(c, http.StatusOK, "reset_password", pageData{Token: token})
}

// ResetPassword godoc
// @Summary Reset the password bound to a token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param token path string true "Reset token"
// @Param password formData string true "New password"
// @Success 303
// @Failure 400 {string} string
// @Router /reset_password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return renderPage(c, http.StatusBadRequest, "reset_password", pageData{Token: token, Error: err.Error()})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), token, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) || errors.Is(err, apperrors.ErrTokenExpired) {
			return c.String(http.StatusBadRequest, apperrors.TokenErrorMessage)
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}
