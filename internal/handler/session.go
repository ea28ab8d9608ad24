package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"fotobox/internal/auth"
	"fotobox/internal/model"
	"fotobox/internal/repository"
)

// currentUser resolves the authenticated user from the session claims the
// middleware stored on the context. A claim pointing at a user id that no
// longer exists fails closed: the request is treated as anonymous.
func currentUser(c echo.Context, users repository.UserRepository) (*model.User, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.SessionClaims)
	if !ok {
		return nil, false
	}

	user, err := users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}
