package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type taskDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newTaskDocument(t *domain.Task) taskDocument {
	return taskDocument{
		ID:          t.ID().String(),
		UserID:      t.UserID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      string(t.Status()),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func (d taskDocument) toDomain() (*domain.Task, error) {
	id, err := domain.ParseTaskID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("stored task id: %v", err)
	}
	owner, err := domain.ParseUserID(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("stored task %s owner: %v", d.ID, err)
	}
	status, err := domain.ParseTaskStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("stored task %s status: %v", d.ID, err)
	}
	return domain.RestoreTask(id, owner, d.Title, d.Description, status, d.CreatedAt.UTC(), d.UpdatedAt.UTC()), nil
}

var orderFields = map[ports.TaskOrderField]string{
	ports.OrderByCreatedAt: "created_at",
	ports.OrderByUpdatedAt: "updated_at",
	ports.OrderByTitle:     "title",
}

// listQuery builds the owner-scoped filter and sort for FindAllByUser. The
// owner predicate is always present; _id breaks ties so order is stable.
func listQuery(userID domain.UserID, opts ports.ListTasksOptions) (bson.D, bson.D, error) {
	opts = opts.Normalize()

	filter := bson.D{{Key: "user_id", Value: userID.String()}}
	if opts.Status != nil {
		filter = append(filter, bson.E{Key: "status", Value: string(*opts.Status)})
	}

	field, ok := orderFields[opts.OrderBy]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported order field %q", opts.OrderBy)
	}
	dir := -1
	switch opts.Direction {
	case ports.SortAsc:
		dir = 1
	case ports.SortDesc:
	default:
		return nil, nil, fmt.Errorf("unsupported sort direction %q", opts.Direction)
	}

	sort := bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
	return filter, sort, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain()
}

// FindAllByUser returns every task owned by userID matching opts.
func (r *TaskRepository) FindAllByUser(ctx context.Context, userID domain.UserID, opts ports.ListTasksOptions) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, sort, err := listQuery(userID, opts)
	if err != nil {
		return nil, err
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		t, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newTaskDocument(task)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return doc.toDomain()
}

// Update overwrites the mutable fields. Concurrent writers race; the last one wins.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newTaskDocument(task)
	update := bson.M{"$set": bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"status":      doc.Status,
		"updated_at":  doc.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return doc.toDomain()
}

func (r *TaskRepository) Delete(ctx context.Context, id domain.TaskID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates the owner-scoped listing indexes.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
