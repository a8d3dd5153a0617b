package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Error is a normalized non-2xx backend response. Message carries the most
// specific text the response body offered: a "detail" string, a "message"
// string, the first field-level validation error, or the HTTP status text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 response. The containers treat
// it as session-invalid: the stored token is stale and must not be retried.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// newError builds an *Error from a response body. Extraction order follows
// what the backend actually sends: DRF-style {"detail": "..."}, then
// {"message": "..."}, then per-field validation errors {"field": ["..."]},
// then a bare JSON string body, then the generic status text.
func newError(status int, body []byte) *Error {
	if msg := extractMessage(body); msg != "" {
		return &Error{Status: status, Message: msg}
	}
	return &Error{Status: status, Message: http.StatusText(status)}
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		// Some endpoints return a bare string body.
		var s string
		if json.Unmarshal(body, &s) == nil {
			return s
		}
		return ""
	}

	for _, key := range []string{"detail", "message"} {
		var s string
		if raw, ok := obj[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}

	// Field errors: pick the first field in key order so the result is
	// deterministic regardless of map iteration.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var msgs []string
		if json.Unmarshal(obj[k], &msgs) == nil && len(msgs) > 0 && msgs[0] != "" {
			return fmt.Sprintf("%s: %s", k, msgs[0])
		}
		var s string
		if json.Unmarshal(obj[k], &s) == nil && s != "" {
			return fmt.Sprintf("%s: %s", k, s)
		}
	}
	return ""
}
