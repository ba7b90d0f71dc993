// Package api handles incoming HTTP requests for the task resource: path and
// body validation, translation to store operations, and mapping of store
// outcomes to status codes and JSON bodies.
package api
