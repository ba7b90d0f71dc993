package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse. Field errors are reported under
// their JSON names so messages match what clients sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// MaxBodyBytes caps the size of a request body accepted by DecodeObject.
const MaxBodyBytes int64 = 1 << 20

var (
	// ErrNotJSONObject is returned when a request body parses but is not an object.
	ErrNotJSONObject = errors.New("request body is not a JSON object")

	// ErrBodyTooLarge is returned when a request body exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeObject reads the body as a JSON object and returns its members
// undecoded, so callers can tell an absent key from a key of the wrong type.
// An absent or blank body decodes to an empty object. Bodies larger than
// MaxBodyBytes are rejected with ErrBodyTooLarge.
func DecodeObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	if r.Body == nil {
		return map[string]json.RawMessage{}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSONObject, err)
	}
	if obj == nil {
		return nil, ErrNotJSONObject
	}
	return obj, nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}
