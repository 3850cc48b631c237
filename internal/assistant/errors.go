package assistant

import (
	"errors"
	"fmt"
)

// ServiceUnavailableError is returned when the AI backend cannot be reached or refuses the call
type ServiceUnavailableError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: AI service unavailable: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: AI service unavailable: %s", e.Operation, e.Message)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError is returned when the AI backend answers with an empty or unparsable payload
type MalformedResponseError struct {
	Operation string
	Message   string
	Response  string
	Cause     error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: malformed AI response: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: malformed AI response: %s", e.Operation, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// IsServiceUnavailable reports whether err is or wraps a ServiceUnavailableError
func IsServiceUnavailable(err error) bool {
	var target *ServiceUnavailableError
	return errors.As(err, &target)
}

// IsMalformedResponse reports whether err is or wraps a MalformedResponseError
func IsMalformedResponse(err error) bool {
	var target *MalformedResponseError
	return errors.As(err, &target)
}
