package service

import (
	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

func toUserView(u *domain.User) ports.UserView {
	return ports.UserView{
		ID:        u.ID().String(),
		Email:     u.Email().String(),
		CreatedAt: u.CreatedAt(),
	}
}

func toTaskView(t *domain.Task) ports.TaskView {
	return ports.TaskView{
		ID:          t.ID().String(),
		UserID:      t.UserID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      string(t.Status()),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}
