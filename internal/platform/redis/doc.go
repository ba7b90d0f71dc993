// Package redis provides a Redis implementation of store.TaskStore. Each task
// is a hash at <prefix><taskId>; conditional operations are single commands
// or Lua scripts, which Redis executes atomically.
package redis
