//go:build integration

package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisStore(t *testing.T) *TaskStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Failed to start Redis testcontainer: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewTaskStore(client, "test:"+t.Name()+":", nil)
}

func TestRedisTaskStore_Lifecycle(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	id := domain.NewTaskID()
	task := domain.NewTask(id, domain.TaskFields{Title: "Buy milk", Description: "2L", Status: "todo"})
	require.NoError(t, s.Put(ctx, task))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	updated, err := s.ConditionalUpdate(ctx, id, domain.TaskFields{Title: "Buy milk", Description: "2L", Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, "done", updated.Status)

	got, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "done", got.Status)

	require.NoError(t, s.ConditionalDelete(ctx, id))
	assert.ErrorIs(t, s.ConditionalDelete(ctx, id), store.ErrTaskNotFound)
}

func TestRedisTaskStore_ConditionalUpdateDoesNotCreate(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	id := uuid.New()
	_, err := s.ConditionalUpdate(ctx, id, domain.TaskFields{Title: "ghost"})
	require.ErrorIs(t, err, store.ErrTaskNotFound)

	exists, err := s.client.Exists(ctx, s.Key(id)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestRedisTaskStore_ConcurrentDeleteSingleWinner(t *testing.T) {
	s := setupRedisStore(t)
	ctx := context.Background()

	id := domain.NewTaskID()
	require.NoError(t, s.Put(ctx, domain.NewTask(id, domain.TaskFields{Title: "t"})))

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.ConditionalDelete(ctx, id)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	}
	assert.Equal(t, 1, wins)
}
