package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/api/middleware"
	"github.com/taskboard/task-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email string) (*ports.RegisterResult, error)
	loginFn    func(ctx context.Context, email string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, email string) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, email)
}

func (s *stubAuthService) Login(ctx context.Context, email string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email)
}

type stubUserService struct {
	createFn func(ctx context.Context, email string) (*ports.UserView, error)
	getFn    func(ctx context.Context, email string) (*ports.UserView, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, email string) (*ports.UserView, error) {
	return s.createFn(ctx, email)
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*ports.UserView, error) {
	return s.getFn(ctx, email)
}

type stubTaskService struct {
	createFn func(ctx context.Context, in ports.CreateTaskInput, userID string) (*ports.TaskView, error)
	listFn   func(ctx context.Context, userID string, opts ports.ListTasksOptions) ([]ports.TaskView, error)
	updateFn func(ctx context.Context, taskID, userID string, in ports.UpdateTaskInput) (*ports.TaskView, error)
	deleteFn func(ctx context.Context, taskID, userID string) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, in ports.CreateTaskInput, userID string) (*ports.TaskView, error) {
	return s.createFn(ctx, in, userID)
}

func (s *stubTaskService) ListTasks(ctx context.Context, userID string, opts ports.ListTasksOptions) ([]ports.TaskView, error) {
	return s.listFn(ctx, userID, opts)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, taskID, userID string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	return s.updateFn(ctx, taskID, userID, in)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	return s.deleteFn(ctx, taskID, userID)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// newContext builds an echo context with the validator installed and,
// when userID is non-empty, an authenticated subject.
func newContext(method, target string, body io.Reader, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req = req.WithContext(middleware.WithSubject(req.Context(), middleware.Subject{UserID: userID}))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}
