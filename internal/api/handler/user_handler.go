package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser returns the user for an email, creating it if needed.
//
// @Summary      Create or fetch a user by email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      emailRequest  true  "User email"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userEnvelope{Status: "success", Data: toUserResponse(*user)})
}

// GetUserByEmail looks a user up by email. An unknown email is a 200 with
// status "not_found".
//
// @Summary      Find a user by email
// @Tags         users
// @Produce      json
// @Param        email  query     string  true  "User email"
// @Success      200    {object}  userEnvelope
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /v1/users [get]
func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	var q getUserQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	user, err := h.userService.GetUserByEmail(c.Request().Context(), q.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(http.StatusOK, messageResponse{Status: "not_found", Message: "user not found"})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userEnvelope{Status: "success", Data: toUserResponse(*user)})
}
