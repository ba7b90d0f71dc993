// Package auth issues and verifies HS256 bearer tokens for the task API.
package auth
