package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "created",
			status:       http.StatusCreated,
			data:         map[string]string{"taskId": "123e4567-e89b-12d3-a456-426614174000"},
			expectedBody: `{"taskId":"123e4567-e89b-12d3-a456-426614174000"}`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			RespondWithJSON(rec, req, tc.status, tc.data)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks/x", nil)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusBadRequest, "Invalid taskId format")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid taskId format"}`, rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "provider unavailable",
		errors.New("dial tcp 10.0.0.7:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"provider unavailable"}`, rec.Body.String())
}

func TestRespondWithNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithNoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
