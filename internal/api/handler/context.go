package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/api/middleware"
	"github.com/taskboard/task-system/internal/core/domain"
)

// subjectID returns the authenticated user id placed on the request by the
// Auth middleware. Its absence means the route was wired without Auth.
func subjectID(c echo.Context) (string, error) {
	s, ok := middleware.SubjectFrom(c.Request().Context())
	if !ok {
		return "", domain.ErrMissingCredentials
	}
	return s.UserID, nil
}
