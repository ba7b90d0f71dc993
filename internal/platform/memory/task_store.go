package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskStore is an in-process implementation of store.TaskStore. A single
// mutex serializes writers, which gives every operation the same per-key
// atomicity the durable backends provide.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]domain.Task
	logger *slog.Logger
}

// Compile-time check to ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[uuid.UUID]domain.Task),
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Put stores a copy of the task, replacing any previous value.
func (s *TaskStore) Put(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks[task.TaskID] = *task
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("task stored",
		slog.String("task_id", task.TaskID.String()))
	return nil
}

// Get returns a copy of the stored task so callers cannot mutate store state.
func (s *TaskStore) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	task, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// ConditionalUpdate replaces the mutable fields only if the task exists.
func (s *TaskStore) ConditionalUpdate(
	ctx context.Context,
	id uuid.UUID,
	fields domain.TaskFields,
) (*domain.TaskFields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	task.Apply(fields)
	s.tasks[id] = task

	updated := task.Fields()
	return &updated, nil
}

// ConditionalDelete removes the task only if it exists.
func (s *TaskStore) ConditionalDelete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Len reports the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
