package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/core/ports"
)

// TaskHandler handles the authenticated task routes. Every operation is
// scoped to the subject set by the Auth middleware.
type TaskHandler struct {
	service ports.TaskService
	metrics *metrics.Metrics
}

func NewTaskHandler(service ports.TaskService, m *metrics.Metrics) *TaskHandler {
	return &TaskHandler{service: service, metrics: m}
}

// ListTasks returns the caller's tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Filter by status"  Enums(PENDING, COMPLETED)
// @Param        orderBy    query     string  false  "Sort field"        Enums(createdAt, updatedAt, title)
// @Param        direction  query     string  false  "Sort direction"    Enums(asc, desc)
// @Success      200        {object}  taskListEnvelope
// @Failure      400        {object}  ErrorResponse
// @Failure      401        {object}  ErrorResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var q listTasksQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), userID, toListOptions(q))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskListEnvelope{Status: "success", Data: toTaskResponses(tasks)})
}

// CreateTask creates a PENDING task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  taskEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}, userID)
	if err != nil {
		return err
	}
	h.metrics.TasksMutatedTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, taskEnvelope{Status: "success", Data: toTaskResponse(*task)})
}

// UpdateTask applies a partial update to one of the caller's tasks.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskEnvelope
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), c.Param("id"), userID, toUpdateInput(req))
	if err != nil {
		return err
	}
	h.metrics.TasksMutatedTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, taskEnvelope{Status: "success", Data: toTaskResponse(*task)})
}

// DeleteTask removes one of the caller's tasks.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	h.metrics.TasksMutatedTotal.WithLabelValues("delete").Inc()

	return c.NoContent(http.StatusNoContent)
}
