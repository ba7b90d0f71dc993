package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Operation names used in StoreError and metrics labels.
const (
	OpPut               = "put"
	OpGet               = "get"
	OpConditionalUpdate = "conditional_update"
	OpConditionalDelete = "conditional_delete"
)

// TaskStore defines the key-value persistence contract for tasks. Every
// operation touches exactly one key; there are no cross-key transactions.
type TaskStore interface {
	// Put inserts or overwrites the task unconditionally.
	Put(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ConditionalUpdate replaces title, description and status of an existing
	// task as one atomic operation and returns the new values.
	// Returns ErrTaskNotFound if the task does not exist at the time of the write.
	ConditionalUpdate(ctx context.Context, id uuid.UUID, fields domain.TaskFields) (*domain.TaskFields, error)

	// ConditionalDelete removes the task only if it exists; the check and the
	// removal are a single atomic operation.
	// Returns ErrTaskNotFound if the task does not exist.
	ConditionalDelete(ctx context.Context, id uuid.UUID) error
}
