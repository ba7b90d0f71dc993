package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Unset function fields return DefaultError (and a nil value).
type MockTaskStore struct {
	// Custom behavior functions
	PutFn               func(ctx context.Context, task *domain.Task) error
	GetFn               func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ConditionalUpdateFn func(ctx context.Context, id uuid.UUID, fields domain.TaskFields) (*domain.TaskFields, error)
	ConditionalDeleteFn func(ctx context.Context, id uuid.UUID) error

	// Default return value
	DefaultError error

	mu    sync.Mutex
	calls []string
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Put implements store.TaskStore.
func (m *MockTaskStore) Put(ctx context.Context, task *domain.Task) error {
	m.record(store.OpPut)
	if m.PutFn != nil {
		return m.PutFn(ctx, task)
	}
	return m.DefaultError
}

// Get implements store.TaskStore.
func (m *MockTaskStore) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.record(store.OpGet)
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// ConditionalUpdate implements store.TaskStore.
func (m *MockTaskStore) ConditionalUpdate(
	ctx context.Context,
	id uuid.UUID,
	fields domain.TaskFields,
) (*domain.TaskFields, error) {
	m.record(store.OpConditionalUpdate)
	if m.ConditionalUpdateFn != nil {
		return m.ConditionalUpdateFn(ctx, id, fields)
	}
	return nil, m.DefaultError
}

// ConditionalDelete implements store.TaskStore.
func (m *MockTaskStore) ConditionalDelete(ctx context.Context, id uuid.UUID) error {
	m.record(store.OpConditionalDelete)
	if m.ConditionalDeleteFn != nil {
		return m.ConditionalDeleteFn(ctx, id)
	}
	return m.DefaultError
}

// Calls returns the operation names invoked so far, in order.
func (m *MockTaskStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockTaskStore) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}
