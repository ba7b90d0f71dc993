// Package testdb provides utilities for tests that run against a real
// PostgreSQL database: URL discovery, a migrated connection, and
// transaction-scoped isolation.
package testdb
