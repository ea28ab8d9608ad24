package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "fotobox/internal/errors"
	"fotobox/internal/repository"
	"fotobox/internal/service"
)

// CaptureHandler handles webcam frame upload and the per-user gallery.
type CaptureHandler struct {
	captureService service.CaptureService
	users          repository.UserRepository
}

// NewCaptureHandler creates a new capture handler.
func NewCaptureHandler(captureService service.CaptureService, users repository.UserRepository) *CaptureHandler {
	return &CaptureHandler{
		captureService: captureService,
		users:          users,
	}
}

// CaptureRequest carries the base64 data-URI frame.
type CaptureRequest struct {
	Imagen string `json:"imagen" validate:"required"`
}

// CaptureResponse reports the stored filename.
type CaptureResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// Capture godoc
// @Summary Store a webcam frame for the authenticated user
// @Tags capture
// @Accept json
// @Produce json
// @Param request body CaptureRequest true "Base64 data-URI image"
// @Success 200 {object} CaptureResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /capturar [post]
func (h *CaptureHandler) Capture(c echo.Context) error {
	user, ok := currentUser(c, h.users)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	var req CaptureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	filename, err := h.captureService.Capture(c.Request().Context(), user, req.Imagen)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CaptureResponse{
		Message:  "image saved",
		Filename: filename,
	})
}

// Gallery godoc
// @Summary List the caller's stored frames
// @Tags capture
// @Produce json
// @Success 200 {array} string
// @Router /galeria [get]
func (h *CaptureHandler) Gallery(c echo.Context) error {
	user, ok := currentUser(c, h.users)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	urls, err := h.captureService.Gallery(c.Request().Context(), user)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, urls)
}
