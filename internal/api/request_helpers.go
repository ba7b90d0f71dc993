package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskIDParam is the path parameter holding the task identifier.
const TaskIDParam = "taskId"

// canonicalUUIDLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalUUIDLength = 36

// Body keys, in the order they are checked.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
)

// getPathTaskID extracts and validates the taskId path parameter. Only the
// canonical hyphenated form is accepted; uuid.Parse alone would also take
// the braced, URN and unhyphenated encodings.
func getPathTaskID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, TaskIDParam)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(TaskIDParam, MsgMissingTaskID, domain.ErrMissingField)
	}

	if len(raw) != canonicalUUIDLength {
		return uuid.Nil, domain.NewValidationError(TaskIDParam, MsgInvalidTaskID, domain.ErrInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(TaskIDParam, MsgInvalidTaskID, domain.ErrInvalidID)
	}

	return id, nil
}

// parseTaskFields pulls title, description and status out of a decoded body.
// Each must be present and a JSON string; title must also be non-empty.
func parseTaskFields(body map[string]json.RawMessage) (domain.TaskFields, error) {
	var fields domain.TaskFields

	targets := []struct {
		key string
		dst *string
	}{
		{fieldTitle, &fields.Title},
		{fieldDescription, &fields.Description},
		{fieldStatus, &fields.Status},
	}

	for _, target := range targets {
		raw, ok := body[target.key]
		if !ok {
			return domain.TaskFields{}, domain.NewValidationError(
				target.key,
				fmt.Sprintf("Missing key: '%s'", target.key),
				domain.ErrMissingField,
			)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, target.dst) != nil {
			return domain.TaskFields{}, domain.NewValidationError(
				target.key,
				fmt.Sprintf("Invalid value for key: '%s'", target.key),
				domain.ErrInvalidFormat,
			)
		}
	}

	if err := shared.ValidateRequest(fields); err != nil {
		field := fieldTitle
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		return domain.TaskFields{}, domain.NewValidationError(
			field,
			SanitizeValidationError(err),
			domain.ErrValidation,
		)
	}

	return fields, nil
}
