package api

import (
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CreateTaskResponse is the body of a successful create.
type CreateTaskResponse struct {
	TaskID string `json:"taskId"`
}

// TaskResponse is the full task record returned by GET.
type TaskResponse struct {
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskResponse carries only the replaced attributes; the identifier is
// already known to the caller.
type UpdateTaskResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      task.TaskID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
	}
}

func fieldsToUpdateResponse(fields *domain.TaskFields) UpdateTaskResponse {
	return UpdateTaskResponse{
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
	}
}
