package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskHandler serves the four task operations. It holds no per-request
// state; everything persistent lives in the store.
type TaskHandler struct {
	store        store.TaskStore
	logger       *slog.Logger
	redactErrors bool
}

// TaskHandlerOption customizes a TaskHandler.
type TaskHandlerOption func(*TaskHandler)

// WithRedactErrors scrubs hosts, credentials, paths and SQL out of the
// error text returned in 500 bodies.
func WithRedactErrors(enabled bool) TaskHandlerOption {
	return func(h *TaskHandler) {
		h.redactErrors = enabled
	}
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger, opts ...TaskHandlerOption) *TaskHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	h := &TaskHandler{
		store:  taskStore,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateTask handles POST /tasks.
// The identifier is generated before the body fields are validated, so a
// rejected request still consumes one.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	body, err := shared.DecodeObject(w, r)
	if err != nil {
		log.Warn("failed to decode create request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	taskID := domain.NewTaskID()

	fields, err := parseTaskFields(body)
	if err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	task := domain.NewTask(taskID, fields)
	if err := h.store.Put(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	log.Info("task created", slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{TaskID: taskID.String()})
}

// GetTask handles GET /tasks/{taskId}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	task, err := h.store.Get(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{taskId}.
//
// Existence is read first so a missing task is reported before any write is
// attempted. The conditional update is itself guarded, so a delete landing
// between the two calls also ends in a 404 and never recreates the task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	taskID, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	body, err := shared.DecodeObject(w, r)
	if err != nil {
		log.Warn("failed to decode update request",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	fields, err := parseTaskFields(body)
	if err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	if _, err := h.store.Get(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	updated, err := h.store.ConditionalUpdate(r.Context(), taskID, fields)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Info("task deleted between existence check and update",
				slog.String("task_id", taskID.String()))
		}
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	log.Info("task updated", slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, fieldsToUpdateResponse(updated))
}

// DeleteTask handles DELETE /tasks/{taskId}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	taskID, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	if err := h.store.ConditionalDelete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, h.redactErrors)
		return
	}

	log.Info("task deleted", slog.String("task_id", taskID.String()))
	shared.RespondWithNoContent(w)
}

// requestLogger returns the request-scoped logger installed by the trace
// middleware, falling back to the handler's own, tagged with the component.
func (h *TaskHandler) requestLogger(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger).
		With(slog.String("component", "task_handler"))
}
