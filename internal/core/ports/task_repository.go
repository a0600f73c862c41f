package ports

import (
	"context"

	"github.com/taskboard/task-system/internal/core/domain"
)

// TaskOrderField is a sortable task attribute.
type TaskOrderField string

const (
	OrderByCreatedAt TaskOrderField = "createdAt"
	OrderByUpdatedAt TaskOrderField = "updatedAt"
	OrderByTitle     TaskOrderField = "title"
)

// SortDirection is the ordering direction for a list query.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListTasksOptions carries the optional filter and ordering for FindAllByUser.
// The owner is never part of the options; it is always a separate argument.
type ListTasksOptions struct {
	Status    *domain.TaskStatus // nil = any status
	OrderBy   TaskOrderField     // empty = createdAt
	Direction SortDirection      // empty = desc
}

// Normalize fills in the createdAt-descending default.
func (o ListTasksOptions) Normalize() ListTasksOptions {
	if o.OrderBy == "" {
		o.OrderBy = OrderByCreatedAt
	}
	if o.Direction == "" {
		o.Direction = SortDesc
	}
	return o
}

// TaskRepository defines persistence operations for tasks.
// Lookups report absence as domain.ErrTaskNotFound; any other store failure
// is returned as-is for the boundary to treat as internal.
type TaskRepository interface {
	FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	FindAllByUser(ctx context.Context, userID domain.UserID, opts ListTasksOptions) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id domain.TaskID) error
}
