package client

import (
	"fmt"
	"strings"
)

// ErrorKind tells which detail an APIError carries.
type ErrorKind int

const (
	// KindMessage errors carry a single Message.
	KindMessage ErrorKind = iota
	// KindFieldErrors errors carry one Fields entry per rejected input field.
	KindFieldErrors
)

// FieldError is one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a failed API call. Kind selects whether Fields or Message is
// the detail to show.
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if e.Kind == KindFieldErrors {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + ": " + f.Message
		}
		return fmt.Sprintf("api: %d %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// FieldMessages indexes Fields by field name.
func (e *APIError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// errorEnvelope is the server's failure body.
type errorEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func newAPIError(status int, env errorEnvelope) *APIError {
	e := &APIError{Status: status, Kind: KindMessage, Message: env.Message}
	if len(env.Errors) > 0 {
		e.Kind = KindFieldErrors
		e.Fields = env.Errors
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return e
}
