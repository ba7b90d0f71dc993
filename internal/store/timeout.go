package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// DefaultTimeout bounds a single store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// timeoutStore applies a per-call deadline to every operation of the
// wrapped store.
type timeoutStore struct {
	next    TaskStore
	timeout time.Duration
}

// WithTimeout wraps s so that no call can block longer than d. A call that
// hits the deadline returns a *StoreError wrapping context.DeadlineExceeded.
// A non-positive d falls back to DefaultTimeout.
func WithTimeout(s TaskStore, d time.Duration) TaskStore {
	if s == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil")
	}
	if d <= 0 {
		d = DefaultTimeout
	}
	return &timeoutStore{next: s, timeout: d}
}

var _ TaskStore = (*timeoutStore)(nil)

func (s *timeoutStore) Put(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.wrap(ctx, OpPut, s.next.Put(ctx, task))
}

func (s *timeoutStore) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	task, err := s.next.Get(ctx, id)
	return task, s.wrap(ctx, OpGet, err)
}

func (s *timeoutStore) ConditionalUpdate(
	ctx context.Context,
	id uuid.UUID,
	fields domain.TaskFields,
) (*domain.TaskFields, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	updated, err := s.next.ConditionalUpdate(ctx, id, fields)
	return updated, s.wrap(ctx, OpConditionalUpdate, err)
}

func (s *timeoutStore) ConditionalDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.wrap(ctx, OpConditionalDelete, s.next.ConditionalDelete(ctx, id))
}

// wrap converts a deadline overrun into a StoreError; other errors pass
// through untouched.
func (s *timeoutStore) wrap(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) || IsNotFoundError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewStoreError(op, "store call timed out after "+s.timeout.String(), context.DeadlineExceeded)
	}
	return err
}
