// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// Each task is one row in the tasks table keyed by task_id; conditional
// operations are single statements whose WHERE clause is the existence
// precondition, so Postgres row locking makes them atomic per key.
//
// The schema is embedded and applied with goose (see Migrate).
package postgres
