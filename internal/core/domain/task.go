package domain

import "time"

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskCompleted TaskStatus = "COMPLETED"
)

// TaskStatuses lists every valid status, in declaration order.
var TaskStatuses = []TaskStatus{TaskPending, TaskCompleted}

// ParseTaskStatus converts s into a TaskStatus. Matching is exact.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", NewValidation("status must be PENDING or COMPLETED", FieldViolation{
		Field: "status", Rule: "oneof", Message: "status must be one of: PENDING COMPLETED",
	})
}

func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskCompleted
}

// Task is a unit of work owned by exactly one user. The owner is fixed at
// creation; every mutator advances updatedAt.
type Task struct {
	id          TaskID
	userID      UserID
	title       string
	description string
	status      TaskStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask builds a PENDING task for owner with both timestamps set to now.
func NewTask(owner UserID, title, description string) *Task {
	now := stamp()
	return &Task{
		id:          NewTaskID(),
		userID:      owner,
		title:       title,
		description: description,
		status:      TaskPending,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RestoreTask rebuilds a task from persisted state.
func RestoreTask(id TaskID, owner UserID, title, description string, status TaskStatus, createdAt, updatedAt time.Time) *Task {
	return &Task{
		id:          id,
		userID:      owner,
		title:       title,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Task) ID() TaskID             { return t.id }
func (t *Task) UserID() UserID         { return t.userID }
func (t *Task) Title() string          { return t.title }
func (t *Task) Description() string    { return t.description }
func (t *Task) Status() TaskStatus     { return t.status }
func (t *Task) CreatedAt() time.Time   { return t.createdAt }
func (t *Task) UpdatedAt() time.Time   { return t.updatedAt }
func (t *Task) IsCompleted() bool      { return t.status == TaskCompleted }
func (t *Task) OwnedBy(id UserID) bool { return t.userID.Equals(id) }

func (t *Task) UpdateTitle(title string) {
	t.title = title
	t.touch()
}

func (t *Task) UpdateDescription(description string) {
	t.description = description
	t.touch()
}

func (t *Task) UpdateStatus(status TaskStatus) {
	t.status = status
	t.touch()
}

func (t *Task) Complete() { t.UpdateStatus(TaskCompleted) }

func (t *Task) MarkAsPending() { t.UpdateStatus(TaskPending) }

// touch sets updatedAt to now, nudging it forward when the clock has not
// moved past the previous stamp.
func (t *Task) touch() {
	now := stamp()
	if !now.After(t.updatedAt) {
		now = t.updatedAt.Add(time.Millisecond)
	}
	t.updatedAt = now
}

// stamp returns the current UTC time at the millisecond precision the store keeps.
func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
