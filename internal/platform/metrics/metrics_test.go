package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/tasks/{taskId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Post("/tasks", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/tasks/"+uuid.NewString(), nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/tasks", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/tasks/{taskId}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/tasks", "200")))
}

func TestInstrumentStore_CountsOutcomes(t *testing.T) {
	m := New("test")
	s := InstrumentStore(memory.NewTaskStore(nil), m)
	ctx := context.Background()

	task := domain.NewTask(domain.NewTaskID(), domain.TaskFields{Title: "t", Description: "d", Status: "s"})
	require.NoError(t, s.Put(ctx, task))
	_, err := s.Get(ctx, task.TaskID)
	require.NoError(t, err)
	_, err = s.Get(ctx, uuid.New())
	require.ErrorIs(t, err, store.ErrTaskNotFound)
	require.NoError(t, s.ConditionalDelete(ctx, task.TaskID))
	require.ErrorIs(t, s.ConditionalDelete(ctx, task.TaskID), store.ErrTaskNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCalls.WithLabelValues(store.OpPut, OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCalls.WithLabelValues(store.OpGet, OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCalls.WithLabelValues(store.OpGet, OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCalls.WithLabelValues(store.OpConditionalDelete, OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCalls.WithLabelValues(store.OpConditionalDelete, OutcomeNotFound)))
}

func TestInstrumentStore_CountsErrors(t *testing.T) {
	m := New("test")
	failing := &failingStore{err: errors.New("boom")}
	s := InstrumentStore(failing, m)

	_, err := s.ConditionalUpdate(context.Background(), uuid.New(), domain.TaskFields{Title: "t"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreCalls.WithLabelValues(store.OpConditionalUpdate, OutcomeError)))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New("tasks")
	m.StoreCalls.WithLabelValues(store.OpGet, OutcomeOK).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tasks_store_operations_total"))
}

// failingStore fails every call with the same error.
type failingStore struct{ err error }

func (f *failingStore) Put(context.Context, *domain.Task) error { return f.err }
func (f *failingStore) Get(context.Context, uuid.UUID) (*domain.Task, error) {
	return nil, f.err
}
func (f *failingStore) ConditionalUpdate(context.Context, uuid.UUID, domain.TaskFields) (*domain.TaskFields, error) {
	return nil, f.err
}
func (f *failingStore) ConditionalDelete(context.Context, uuid.UUID) error { return f.err }
