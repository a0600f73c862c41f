package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Register creates a new user account and returns a bearer token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "Email to register"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req.Email)
	if err != nil {
		h.record("register", err)
		return err
	}
	h.metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()

	user := toUserResponse(res.User)
	return c.JSON(http.StatusCreated, authResponse{Status: "created", Token: res.Token, User: &user})
}

// Login issues a fresh bearer token for a registered email.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "Registered email"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  authResponse
// @Failure      429   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email)
	if err != nil {
		h.record("login", err)
		return err
	}

	if res.Status == ports.LoginNotFound {
		h.metrics.AuthAttemptsTotal.WithLabelValues("login", "not_found").Inc()
		return c.JSON(http.StatusNotFound, authResponse{Status: "not_found", Message: "user not found"})
	}
	h.metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()

	user := toUserResponse(*res.User)
	return c.JSON(http.StatusOK, authResponse{Status: "ok", Token: res.Token, User: &user})
}

func (h *AuthHandler) record(action string, err error) {
	outcome := "error"
	switch {
	case errors.Is(err, domain.ErrConflict):
		outcome = "conflict"
	case errors.Is(err, domain.ErrValidation):
		outcome = "invalid"
	}
	h.metrics.AuthAttemptsTotal.WithLabelValues(action, outcome).Inc()
}
