package domain

import "github.com/google/uuid"

// UserID identifies a User. Fresh ids are random UUIDs; stored ids are opaque.
type UserID struct {
	value string
}

func NewUserID() UserID {
	return UserID{value: uuid.NewString()}
}

// ParseUserID restores an id read from storage or a verified token.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return UserID{}, NewValidation("user id must be a non-empty string", FieldViolation{
			Field: "userId", Rule: "required", Message: "user id must be a non-empty string",
		})
	}
	return UserID{value: s}, nil
}

func (id UserID) String() string { return id.value }

func (id UserID) Equals(other UserID) bool { return id.value == other.value }

func (id UserID) IsZero() bool { return id.value == "" }

// TaskID identifies a Task.
type TaskID struct {
	value string
}

func NewTaskID() TaskID {
	return TaskID{value: uuid.NewString()}
}

func ParseTaskID(s string) (TaskID, error) {
	if s == "" {
		return TaskID{}, NewValidation("task id must be a non-empty string", FieldViolation{
			Field: "id", Rule: "required", Message: "task id must be a non-empty string",
		})
	}
	return TaskID{value: s}, nil
}

func (id TaskID) String() string { return id.value }

func (id TaskID) Equals(other TaskID) bool { return id.value == other.value }

func (id TaskID) IsZero() bool { return id.value == "" }
