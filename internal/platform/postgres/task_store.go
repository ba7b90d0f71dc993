package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Put implements store.TaskStore.Put as an upsert on task_id.
func (s *PostgresTaskStore) Put(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (task_id, title, description, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (task_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    status = EXCLUDED.status
	`
	_, err := s.db.ExecContext(ctx, query, task.TaskID, task.Title, task.Description, task.Status)
	if err != nil {
		log.Error("failed to put task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.TaskID.String()))
		return MapError(store.OpPut, err)
	}

	log.Debug("task stored", slog.String("task_id", task.TaskID.String()))
	return nil
}

// Get implements store.TaskStore.Get.
// Returns store.ErrTaskNotFound if no row exists for id.
func (s *PostgresTaskStore) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT task_id, title, description, status
		FROM tasks
		WHERE task_id = $1
	`
	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.TaskID,
		&task.Title,
		&task.Description,
		&task.Status,
	)
	if err != nil {
		mapped := MapError(store.OpGet, err)
		if store.IsNotFoundError(mapped) {
			log.Debug("task not found", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to get task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, mapped
	}

	return &task, nil
}

// ConditionalUpdate implements store.TaskStore.ConditionalUpdate. The WHERE
// clause is the existence check, so a row deleted concurrently yields no
// RETURNING row and store.ErrTaskNotFound instead of a resurrected task.
func (s *PostgresTaskStore) ConditionalUpdate(
	ctx context.Context,
	id uuid.UUID,
	fields domain.TaskFields,
) (*domain.TaskFields, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4
		WHERE task_id = $1
		RETURNING title, description, status
	`
	var updated domain.TaskFields
	err := s.db.QueryRowContext(ctx, query, id, fields.Title, fields.Description, fields.Status).Scan(
		&updated.Title,
		&updated.Description,
		&updated.Status,
	)
	if err != nil {
		mapped := MapError(store.OpConditionalUpdate, err)
		if store.IsNotFoundError(mapped) {
			log.Debug("conditional update found no task", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, mapped
	}

	log.Debug("task updated", slog.String("task_id", id.String()))
	return &updated, nil
}

// ConditionalDelete implements store.TaskStore.ConditionalDelete.
func (s *PostgresTaskStore) ConditionalDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(store.OpConditionalDelete, err)
	}

	if err := CheckRowsAffected(store.OpConditionalDelete, result); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("conditional delete found no task", slog.String("task_id", id.String()))
		}
		return err
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}
