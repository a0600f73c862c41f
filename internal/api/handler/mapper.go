package handler

import (
	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

func toUserResponse(v ports.UserView) userResponse {
	return userResponse{ID: v.ID, Email: v.Email, CreatedAt: v.CreatedAt}
}

func toTaskResponse(v ports.TaskView) taskResponse {
	return taskResponse{
		ID:          v.ID,
		UserID:      v.UserID,
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toTaskResponses(views []ports.TaskView) []taskResponse {
	out := make([]taskResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTaskResponse(v))
	}
	return out
}

func toUpdateInput(req updateTaskRequest) ports.UpdateTaskInput {
	in := ports.UpdateTaskInput{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		in.Status = &s
	}
	return in
}

func toListOptions(q listTasksQuery) ports.ListTasksOptions {
	opts := ports.ListTasksOptions{
		OrderBy:   ports.TaskOrderField(q.OrderBy),
		Direction: ports.SortDirection(q.Direction),
	}
	if q.Status != "" {
		s := domain.TaskStatus(q.Status)
		opts.Status = &s
	}
	return opts
}

// NewErrorResponse builds the error envelope.
func NewErrorResponse(code, message string, violations []domain.FieldViolation) ErrorResponse {
	resp := ErrorResponse{Status: "error", Message: message, Code: code}
	for _, v := range violations {
		resp.Errors = append(resp.Errors, ErrorResponseViolation(v))
	}
	return resp
}
