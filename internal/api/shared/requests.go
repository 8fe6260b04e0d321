package shared

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// MaxBodyBytes caps request bodies read by DecodeJSON and DecodeJSONObject.
// Larger bodies fail with an error wrapping *http.MaxBytesError.
const MaxBodyBytes = 1 << 20

// ErrNotJSONObject is returned when a body is valid JSON but not an object.
var ErrNotJSONObject = errors.New("request body must be a JSON object")

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	return json.Unmarshal(body, v)
}

// DecodeJSONObject reads the request body as an untyped JSON object.
// An empty body decodes to an empty map; any other non-object value returns
// ErrNotJSONObject.
func DecodeJSONObject(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse request body: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotJSONObject
	}
	return obj, nil
}
