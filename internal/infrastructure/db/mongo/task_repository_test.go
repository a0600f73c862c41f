package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

const tasksNS = "test.tasks"

func taskDoc(id, owner, title, status string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: owner},
		{Key: "title", Value: title},
		{Key: "description", Value: ""},
		{Key: "status", Value: status},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: created},
	}
}

func mustUserID(t *testing.T, s string) domain.UserID {
	t.Helper()
	id, err := domain.ParseUserID(s)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustTaskID(t *testing.T, s string) domain.TaskID {
	t.Helper()
	id, err := domain.ParseTaskID(s)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestListQuery(t *testing.T) {
	owner := mustUserID(t, "u1")
	completed := domain.TaskCompleted

	tests := []struct {
		name       string
		opts       ports.ListTasksOptions
		wantFilter bson.D
		wantSort   bson.D
	}{
		{
			name:       "defaults to created_at desc",
			opts:       ports.ListTasksOptions{},
			wantFilter: bson.D{{Key: "user_id", Value: "u1"}},
			wantSort:   bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			name:       "title asc",
			opts:       ports.ListTasksOptions{OrderBy: ports.OrderByTitle, Direction: ports.SortAsc},
			wantFilter: bson.D{{Key: "user_id", Value: "u1"}},
			wantSort:   bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			name:       "status filter keeps owner scope",
			opts:       ports.ListTasksOptions{Status: &completed, OrderBy: ports.OrderByUpdatedAt},
			wantFilter: bson.D{{Key: "user_id", Value: "u1"}, {Key: "status", Value: "COMPLETED"}},
			wantSort:   bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, sort, err := listQuery(owner, tt.opts)
			if err != nil {
				t.Fatalf("listQuery: %v", err)
			}
			if !equalD(filter, tt.wantFilter) {
				t.Errorf("filter = %v, want %v", filter, tt.wantFilter)
			}
			if !equalD(sort, tt.wantSort) {
				t.Errorf("sort = %v, want %v", sort, tt.wantSort)
			}
		})
	}

	if _, _, err := listQuery(owner, ports.ListTasksOptions{OrderBy: "priority"}); err == nil {
		t.Error("expected error for unknown order field")
	}
	if _, _, err := listQuery(owner, ports.ListTasksOptions{Direction: "up"}); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func equalD(a, b bson.D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

func TestTaskRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("FindByID decodes document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch,
			taskDoc("t1", "u1", "write report", "COMPLETED", created)))

		task, err := NewTaskRepository(mt.DB).FindByID(context.Background(), mustTaskID(t, "t1"))
		if err != nil {
			mt.Fatalf("FindByID: %v", err)
		}
		if task.ID().String() != "t1" || task.UserID().String() != "u1" {
			mt.Errorf("unexpected identity %s/%s", task.ID(), task.UserID())
		}
		if task.Status() != domain.TaskCompleted || task.Title() != "write report" {
			mt.Errorf("unexpected task %+v", task)
		}
		if !task.CreatedAt().Equal(created) {
			mt.Errorf("createdAt = %v", task.CreatedAt())
		}
	})

	mt.Run("FindByID missing maps to ErrTaskNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch))

		_, err := NewTaskRepository(mt.DB).FindByID(context.Background(), mustTaskID(t, "nope"))
		if !errors.Is(err, domain.ErrTaskNotFound) {
			mt.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	mt.Run("FindAllByUser returns documents in cursor order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch,
			taskDoc("t2", "u1", "b", "PENDING", created.Add(time.Hour)),
			taskDoc("t1", "u1", "a", "PENDING", created),
		))

		tasks, err := NewTaskRepository(mt.DB).FindAllByUser(context.Background(), mustUserID(t, "u1"), ports.ListTasksOptions{})
		if err != nil {
			mt.Fatalf("FindAllByUser: %v", err)
		}
		if len(tasks) != 2 || tasks[0].ID().String() != "t2" || tasks[1].ID().String() != "t1" {
			mt.Fatalf("unexpected tasks %v", tasks)
		}
	})

	mt.Run("FindAllByUser rejects corrupt status as internal", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNS, mtest.FirstBatch,
			taskDoc("t1", "u1", "a", "ARCHIVED", created)))

		_, err := NewTaskRepository(mt.DB).FindAllByUser(context.Background(), mustUserID(t, "u1"), ports.ListTasksOptions{})
		if err == nil {
			mt.Fatal("expected error")
		}
		if domain.KindOf(err) != domain.KindInternal {
			mt.Errorf("kind = %v, want internal", domain.KindOf(err))
		}
	})

	mt.Run("Create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		task := domain.NewTask(mustUserID(t, "u1"), "title", "desc")
		stored, err := NewTaskRepository(mt.DB).Create(context.Background(), task)
		if err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if !stored.ID().Equals(task.ID()) || stored.Status() != domain.TaskPending {
			mt.Errorf("unexpected stored task %+v", stored)
		}
	})

	mt.Run("Update", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		task := domain.NewTask(mustUserID(t, "u1"), "title", "")
		task.Complete()
		updated, err := NewTaskRepository(mt.DB).Update(context.Background(), task)
		if err != nil {
			mt.Fatalf("Update: %v", err)
		}
		if updated.Status() != domain.TaskCompleted {
			mt.Errorf("status = %s", updated.Status())
		}
	})

	mt.Run("Update unmatched maps to ErrTaskNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := NewTaskRepository(mt.DB).Update(context.Background(), domain.NewTask(mustUserID(t, "u1"), "x", ""))
		if !errors.Is(err, domain.ErrTaskNotFound) {
			mt.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	mt.Run("Delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := NewTaskRepository(mt.DB).Delete(context.Background(), mustTaskID(t, "t1")); err != nil {
			mt.Fatalf("Delete: %v", err)
		}
	})

	mt.Run("Delete missing maps to ErrTaskNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewTaskRepository(mt.DB).Delete(context.Background(), mustTaskID(t, "t1"))
		if !errors.Is(err, domain.ErrTaskNotFound) {
			mt.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	mt.Run("store failure is not translated", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "server shutting down",
		}))

		_, err := NewTaskRepository(mt.DB).FindByID(context.Background(), mustTaskID(t, "t1"))
		if err == nil {
			mt.Fatal("expected error")
		}
		if domain.KindOf(err) != domain.KindInternal {
			mt.Errorf("kind = %v, want internal", domain.KindOf(err))
		}
	})
}
