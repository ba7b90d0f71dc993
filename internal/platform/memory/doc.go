// Package memory provides an in-process TaskStore. It is the default
// backend for local development and the backing store for handler tests.
package memory
