// Package metrics exposes Prometheus instruments for the HTTP surface and
// the task store.
package metrics
