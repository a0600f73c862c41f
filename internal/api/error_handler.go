package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/api/handler"
	"github.com/taskboard/task-system/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps every domain.Kind to its status and code.
//   - Maps Echo's own errors (404 route, 405, 413, 429) onto the same envelope.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"status":"error","message":...,"code":...,"errors":[...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation, domain.KindAuthentication, domain.KindAuthorization,
			domain.KindNotFound, domain.KindConflict:
			return de.Kind.Status(), handler.NewErrorResponse(de.Kind.Code(), de.Message, de.Violations)
		case domain.KindInternal:
		}
	}

	// Echo's own errors (router 404/405, body limit, rate limit).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, handler.NewErrorResponse(codeForStatus(he.Code), fmt.Sprintf("%v", he.Message), nil)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.NewErrorResponse(domain.KindInternal.Code(), "internal server error", nil)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return domain.KindAuthentication.Code()
	case http.StatusForbidden:
		return domain.KindAuthorization.Code()
	case http.StatusNotFound:
		return domain.KindNotFound.Code()
	case http.StatusConflict:
		return domain.KindConflict.Code()
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	default:
		return domain.KindValidation.Code()
	}
}
