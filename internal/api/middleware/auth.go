package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// Subject is the verified identity behind a request.
type Subject struct {
	UserID string
	Email  string
}

type subjectKey struct{}

// WithSubject returns a copy of ctx carrying s.
func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFrom returns the subject stored by Auth, if any.
func SubjectFrom(ctx context.Context) (Subject, bool) {
	s, ok := ctx.Value(subjectKey{}).(Subject)
	return s, ok && s.UserID != ""
}

// Auth requires "Authorization: Bearer <token>". A missing or malformed header
// fails with domain.ErrMissingCredentials before tokens is consulted; a token
// that does not verify fails with domain.ErrInvalidToken.
func Auth(tokens ports.TokenGenerator, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				m.AuthRejectionsTotal.WithLabelValues("missing_credentials").Inc()
				return domain.ErrMissingCredentials
			}

			payload, err := tokens.VerifyToken(raw)
			if err != nil {
				if domain.KindOf(err) != domain.KindAuthentication {
					// misconfiguration, not a bad credential
					return err
				}
				m.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken.Wrap(err)
			}

			s := Subject{UserID: payload.UserID, Email: payload.Email}
			c.SetRequest(c.Request().WithContext(WithSubject(c.Request().Context(), s)))
			c.Set("userId", s.UserID)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
