package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// Length caps, counted in runes like the request schema's max tags.
const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

type TaskService struct {
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, logger: logger}
}

// CreateTask persists a new PENDING task owned by userID.
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput, userID string) (*ports.TaskView, error) {
	owner, err := domain.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	created, err := s.tasks.Create(ctx, domain.NewTask(owner, input.Title, input.Description))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID().String()).Str("user_id", userID).Msg("task created")
	view := toTaskView(created)
	return &view, nil
}

// ListTasks returns userID's tasks. Options are normalized to createdAt desc
// when unset.
func (s *TaskService) ListTasks(ctx context.Context, userID string, opts ports.ListTasksOptions) ([]ports.TaskView, error) {
	owner, err := domain.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	opts = opts.Normalize()
	if err := validateListOptions(opts); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindAllByUser(ctx, owner, opts)
	if err != nil {
		return nil, err
	}

	views := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		// repository is trusted to scope by owner; drop anything that slipped through
		if !t.OwnedBy(owner) {
			continue
		}
		views = append(views, toTaskView(t))
	}
	return views, nil
}

// UpdateTask applies the fields present in input. Ownership is checked
// before the patch is looked at.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID string, input ports.UpdateTaskInput) (*ports.TaskView, error) {
	task, err := s.loadOwned(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.NewValidation("invalid task status", domain.FieldViolation{
			Field:   "status",
			Rule:    "oneof",
			Message: "status must be one of PENDING, COMPLETED",
		})
	}

	if input.Title != nil {
		task.UpdateTitle(*input.Title)
	}
	if input.Description != nil {
		task.UpdateDescription(*input.Description)
	}
	if input.Status != nil {
		task.UpdateStatus(*input.Status)
	}

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to update task")
		}
		return nil, err
	}

	s.logger.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task updated")
	view := toTaskView(updated)
	return &view, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	task, err := s.loadOwned(ctx, taskID, userID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, task.ID()); err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to delete task")
		}
		return err
	}

	s.logger.Info().Str("task_id", taskID).Str("user_id", userID).Msg("task deleted")
	return nil
}

// loadOwned fetches taskID and fails with domain.ErrForbidden unless userID owns it.
func (s *TaskService) loadOwned(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	id, err := domain.ParseTaskID(taskID)
	if err != nil {
		return nil, err
	}
	owner, err := domain.ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	if !task.OwnedBy(owner) {
		s.logger.Warn().Str("task_id", taskID).Str("user_id", userID).Msg("task access denied")
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.NewValidation("title is required", domain.FieldViolation{
			Field:   "title",
			Rule:    "required",
			Message: "title is required",
		})
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return tooLong("title", maxTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return tooLong("description", maxDescriptionLength)
	}
	return nil
}

func tooLong(field string, max int) error {
	msg := fmt.Sprintf("%s must be at most %d characters", field, max)
	return domain.NewValidation(msg, domain.FieldViolation{
		Field:   field,
		Rule:    "max",
		Message: msg,
	})
}

func validateListOptions(opts ports.ListTasksOptions) error {
	var violations []domain.FieldViolation
	if opts.Status != nil && !opts.Status.Valid() {
		violations = append(violations, domain.FieldViolation{Field: "status", Rule: "oneof", Message: "status must be one of PENDING, COMPLETED"})
	}
	switch opts.OrderBy {
	case ports.OrderByCreatedAt, ports.OrderByUpdatedAt, ports.OrderByTitle:
	default:
		violations = append(violations, domain.FieldViolation{Field: "orderBy", Rule: "oneof", Message: "orderBy must be one of createdAt, updatedAt, title"})
	}
	switch opts.Direction {
	case ports.SortAsc, ports.SortDesc:
	default:
		violations = append(violations, domain.FieldViolation{Field: "direction", Rule: "oneof", Message: "direction must be one of asc, desc"})
	}
	if len(violations) > 0 {
		return domain.NewValidation("invalid list options", violations...)
	}
	return nil
}
