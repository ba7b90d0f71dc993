package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{"none set", map[string]string{"TASKS_TEST_DB_URL": "", "DATABASE_URL": ""}, ""},
		{"database url only", map[string]string{"TASKS_TEST_DB_URL": "", "DATABASE_URL": "postgres://b"}, "postgres://b"},
		{"test url wins", map[string]string{"TASKS_TEST_DB_URL": "postgres://a", "DATABASE_URL": "postgres://b"}, "postgres://a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, GetTestDatabaseURL())
		})
	}
}
