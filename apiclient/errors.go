package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"retro-accessories/model"
)

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Message string
	Payload any
}

func (e *Error) Error() string { return e.Message }

// Is lets callers match API errors against the model sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case model.ErrNotFound:
		return e.Status == http.StatusNotFound
	case model.ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	case model.ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// newError picks the message from a JSON detail or message field, then a
// text body, then a generic "Request failed (status)".
func newError(status int, raw []byte, isJSON bool) *Error {
	e := &Error{Status: status}
	if isJSON {
		var payload any
		if json.Unmarshal(raw, &payload) == nil {
			e.Payload = payload
			if m, ok := payload.(map[string]any); ok {
				for _, k := range []string{"detail", "message"} {
					if s, ok := m[k].(string); ok && s != "" {
						e.Message = s
						break
					}
				}
			}
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		e.Payload = text
		e.Message = text
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("Request failed (%d)", status)
	}
	return e
}
