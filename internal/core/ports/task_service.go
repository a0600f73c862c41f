package ports

import (
	"context"
	"time"

	"github.com/taskboard/task-system/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput is a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskView is the read projection of a task handed to the transport layer.
type TaskView struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskService defines use-case operations for tasks. userID is always the
// authenticated subject.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput, userID string) (*TaskView, error)
	ListTasks(ctx context.Context, userID string, opts ListTasksOptions) ([]TaskView, error)
	UpdateTask(ctx context.Context, taskID, userID string, input UpdateTaskInput) (*TaskView, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}
