package redis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces task hashes in a shared Redis.
const DefaultKeyPrefix = "task:"

// Hash field names.
const (
	fieldTaskID      = "taskId"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
)

// updateIfExists writes the three mutable fields only when the hash exists.
var updateIfExists = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
redis.call('HSET', KEYS[1], 'title', ARGV[1], 'description', ARGV[2], 'status', ARGV[3])
return 1
`)

// TaskStore implements store.TaskStore on Redis hashes.
type TaskStore struct {
	client goredis.UniversalClient
	prefix string
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a Redis-backed task store. An empty prefix selects
// DefaultKeyPrefix. If logger is nil, a default logger will be used.
func NewTaskStore(client goredis.UniversalClient, prefix string, logger *slog.Logger) *TaskStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("component", "redis_task_store")),
	}
}

// Key returns the Redis key holding the task with the given id.
func (s *TaskStore) Key(id uuid.UUID) string {
	return s.prefix + id.String()
}

// Put writes every field of the hash, overwriting any previous task.
func (s *TaskStore) Put(ctx context.Context, task *domain.Task) error {
	err := s.client.HSet(ctx, s.Key(task.TaskID),
		fieldTaskID, task.TaskID.String(),
		fieldTitle, task.Title,
		fieldDescription, task.Description,
		fieldStatus, task.Status,
	).Err()
	if err != nil {
		return s.fail(ctx, store.OpPut, task.TaskID, err)
	}
	return nil
}

// Get reads the hash; an empty reply means the key does not exist.
func (s *TaskStore) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	values, err := s.client.HGetAll(ctx, s.Key(id)).Result()
	if err != nil {
		return nil, s.fail(ctx, store.OpGet, id, err)
	}
	if len(values) == 0 {
		return nil, store.ErrTaskNotFound
	}

	return &domain.Task{
		TaskID:      id,
		Title:       values[fieldTitle],
		Description: values[fieldDescription],
		Status:      values[fieldStatus],
	}, nil
}

// ConditionalUpdate runs the update script, which checks existence and
// writes in one atomic step.
func (s *TaskStore) ConditionalUpdate(
	ctx context.Context,
	id uuid.UUID,
	fields domain.TaskFields,
) (*domain.TaskFields, error) {
	updated, err := updateIfExists.Run(ctx, s.client, []string{s.Key(id)},
		fields.Title, fields.Description, fields.Status,
	).Int64()
	if err != nil {
		return nil, s.fail(ctx, store.OpConditionalUpdate, id, err)
	}
	if updated == 0 {
		return nil, store.ErrTaskNotFound
	}

	result := fields
	return &result, nil
}

// ConditionalDelete relies on DEL reporting how many keys it removed.
func (s *TaskStore) ConditionalDelete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.client.Del(ctx, s.Key(id)).Result()
	if err != nil {
		return s.fail(ctx, store.OpConditionalDelete, id, err)
	}
	if removed == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) fail(ctx context.Context, op string, id uuid.UUID, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error("redis operation failed",
		slog.String("operation", op),
		slog.String("task_id", id.String()),
		slog.String("error", err.Error()))
	return store.NewStoreError(op, "redis error", err)
}
