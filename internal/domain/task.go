package domain

import (
	"github.com/google/uuid"
)

// Task is the single persisted resource managed by the service.
// TaskID is assigned once at creation and never changes.
type Task struct {
	TaskID      uuid.UUID `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// TaskFields holds the mutable attributes of a Task. Create and Update
// both supply all three; there is no partial update.
type TaskFields struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// NewTask assembles a Task from a freshly generated identifier and the
// given fields.
func NewTask(id uuid.UUID, fields TaskFields) *Task {
	return &Task{
		TaskID:      id,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
	}
}

// Fields returns the mutable attributes of the task.
func (t *Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
}

// Apply replaces the mutable attributes of the task. TaskID is untouched.
func (t *Task) Apply(fields TaskFields) {
	t.Title = fields.Title
	t.Description = fields.Description
	t.Status = fields.Status
}

// NewTaskID generates a random (version 4) identifier for a new task.
func NewTaskID() uuid.UUID {
	return uuid.New()
}
