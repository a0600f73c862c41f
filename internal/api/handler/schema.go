package handler

import "time"

// --- Requests ---

type emailRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

type getUserQuery struct {
	Email string `query:"email" validate:"required"`
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// updateTaskRequest is a partial update. Field content is checked by the use
// case after ownership so a non-owner always gets 403.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type listTasksQuery struct {
	Status    string `query:"status" validate:"omitempty,oneof=PENDING COMPLETED"`
	OrderBy   string `query:"orderBy" validate:"omitempty,oneof=createdAt updatedAt title"`
	Direction string `query:"direction" validate:"omitempty,oneof=asc desc"`
}

// --- Responses ---

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type authResponse struct {
	Status  string        `json:"status"`
	Token   string        `json:"token,omitempty"`
	User    *userResponse `json:"user,omitempty"`
	Message string        `json:"message,omitempty"`
}

type userEnvelope struct {
	Status string       `json:"status"`
	Data   userResponse `json:"data"`
}

type taskEnvelope struct {
	Status string       `json:"status"`
	Data   taskResponse `json:"data"`
}

type taskListEnvelope struct {
	Status string         `json:"status"`
	Data   []taskResponse `json:"data"`
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope rendered for every failed request.
type ErrorResponse struct {
	Status  string                   `json:"status"`
	Message string                   `json:"message"`
	Code    string                   `json:"code"`
	Errors  []ErrorResponseViolation `json:"errors,omitempty"`
}

type ErrorResponseViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
