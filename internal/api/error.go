package api

import (
	"encoding/json"
	"fmt"
)

// Error is a non-success HTTP response from the backend, carrying the
// server-supplied message when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// newError extracts the server message from an error body, falling back to
// a generic message when the body carries none.
func newError(status int, body []byte) *Error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &Error{Status: status, Message: payload.Error}
	}
	return &Error{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
}
