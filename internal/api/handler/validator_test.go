package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

func TestBind_RejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		req   any
		field string
	}{
		{"create task", `{"title":"t","userId":"someone-else"}`, &createTaskRequest{}, "userId"},
		{"update task", `{"status":"COMPLETED","createdAt":"2020-01-01T00:00:00Z"}`, &updateTaskRequest{}, "createdAt"},
		{"register", `{"email":"a@example.com","role":"admin"}`, &emailRequest{}, "role"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/", strings.NewReader(tc.body), "")
			err := bind(c, tc.req)

			var de *domain.Error
			if !errors.As(err, &de) || de.Kind != domain.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(de.Violations) != 1 || de.Violations[0].Field != tc.field || de.Violations[0].Rule != "unknown" {
				t.Errorf("violations = %+v", de.Violations)
			}
		})
	}
}

func TestBind_AcceptsDeclaredFields(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/", strings.NewReader(`{"title":"t","description":"d","status":"PENDING"}`), "")
	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Title == nil || *req.Title != "t" || req.Description == nil || req.Status == nil {
		t.Errorf("fields not bound: %+v", req)
	}
}

func TestBind_EmptyBodyAndMalformedJSON(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/", strings.NewReader(""), "")
	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		t.Fatalf("empty body: unexpected error %v", err)
	}

	c, _ = newContext(http.MethodPost, "/", strings.NewReader(`{"title":`), "")
	err := bind(c, &createTaskRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("malformed body: expected validation error, got %v", err)
	}
}

func TestBind_QueryStillBound(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/v1/tasks?status=PENDING&orderBy=title", nil, "")
	var q listTasksQuery
	if err := bind(c, &q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Status != "PENDING" || q.OrderBy != "title" {
		t.Errorf("query = %+v", q)
	}
}

func TestTaskHandler_UpdateTask_UnknownFieldNeverReachesService(t *testing.T) {
	called := false
	stub := &stubTaskService{
		updateFn: func(context.Context, string, string, ports.UpdateTaskInput) (*ports.TaskView, error) {
			called = true
			return nil, nil
		},
	}
	h := NewTaskHandler(stub, newTestMetrics())

	c, _ := newContext(http.MethodPut, "/v1/tasks/t1", strings.NewReader(`{"title":"x","userId":"u2"}`), "u1")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.UpdateTask(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Error("service was called")
	}
}
