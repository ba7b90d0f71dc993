// Package store defines the persistence contract for tasks and the errors
// shared by every backend. Backends live under internal/platform; the
// handlers depend only on the TaskStore interface defined here.
package store
