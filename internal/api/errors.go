package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Client-facing messages.
const (
	MsgMissingTaskID  = "Missing taskId in path parameters"
	MsgInvalidTaskID  = "Invalid taskId format"
	MsgTaskNotFound   = "Task not found"
	MsgInvalidEntity  = "Invalid entity data"
	MsgUnexpectedFail = "An unexpected error occurred"
	MsgBodyTooLarge   = "Request body too large"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Anything
// not recognized is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	case domain.IsValidationError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the text placed in the error body. Validation and
// not-found messages are fixed strings; for server errors the raw error
// text is returned, passed through redact.Error when redactErrors is set.
func ErrorMessage(err error, redactErrors bool) string {
	if err == nil {
		return MsgUnexpectedFail
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case store.IsNotFoundError(err):
		return MsgTaskNotFound
	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidEntity
	case errors.Is(err, shared.ErrBodyTooLarge):
		return MsgBodyTooLarge
	case redactErrors:
		return redact.Error(err)
	default:
		return err.Error()
	}
}

// HandleAPIError writes the status and {"error": ...} body for err and logs
// the redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, redactErrors bool) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), ErrorMessage(err, redactErrors), err)
}

// SanitizeValidationError turns a validator error into a client message such
// as "Invalid title: required field".
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'TaskFields.title' Error:Field validation for 'title' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
