package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Outcome label values for store operations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type instrumentedStore struct {
	next    store.TaskStore
	metrics *Metrics
}

// InstrumentStore wraps s so that every call is counted and timed.
func InstrumentStore(s store.TaskStore, m *Metrics) store.TaskStore {
	return &instrumentedStore{next: s, metrics: m}
}

var _ store.TaskStore = (*instrumentedStore)(nil)

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	outcome := OutcomeOK
	switch {
	case err == nil:
	case store.IsNotFoundError(err):
		outcome = OutcomeNotFound
	default:
		outcome = OutcomeError
	}
	s.metrics.StoreCalls.WithLabelValues(op, outcome).Inc()
	s.metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *instrumentedStore) Put(ctx context.Context, task *domain.Task) error {
	start := time.Now()
	err := s.next.Put(ctx, task)
	s.observe(store.OpPut, start, err)
	return err
}

func (s *instrumentedStore) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	start := time.Now()
	task, err := s.next.Get(ctx, id)
	s.observe(store.OpGet, start, err)
	return task, err
}

func (s *instrumentedStore) ConditionalUpdate(
	ctx context.Context,
	id uuid.UUID,
	fields domain.TaskFields,
) (*domain.TaskFields, error) {
	start := time.Now()
	updated, err := s.next.ConditionalUpdate(ctx, id, fields)
	s.observe(store.OpConditionalUpdate, start, err)
	return updated, err
}

func (s *instrumentedStore) ConditionalDelete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := s.next.ConditionalDelete(ctx, id)
	s.observe(store.OpConditionalDelete, start, err)
	return err
}
