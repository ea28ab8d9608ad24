package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fotobox/internal/auth"
	"fotobox/internal/config"
	"fotobox/internal/handler"
)

// Register wires routes and middleware. Protected routes resolve the session
// cookie; an absent or invalid session redirects to the login entry point
// instead of returning a bare 401.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	captureHandler *handler.CaptureHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Stored frames are public static content.
	e.Static("/capturas", cfg.UploadDir)

	// Public routes
	e.GET("/", authHandler.Home)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/forgot_password", authHandler.ForgotPasswordForm)
	e.POST("/forgot_password", authHandler.ForgotPassword)
	e.GET("/reset_password/:token", authHandler.ResetPasswordForm)
	e.POST("/reset_password/:token", authHandler.ResetPassword)

	// Protected routes (require an authenticated session)
	protected := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SecretKey),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusSeeOther, "/login")
		},
	}))

	protected.GET("/logout", authHandler.Logout)
	protected.POST("/capturar", captureHandler.Capture)
	protected.GET("/galeria", captureHandler.Gallery)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
