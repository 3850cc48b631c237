// Package validation provides the precondition error shared by editing, export and the preferences wizard.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error represents a failed precondition: a missing required field, an unknown edit
// selector or a wizard step that cannot advance yet.
type Error struct {
	Field   string
	Message string
	Cause   error
}

// New returns a validation error for a single field
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s - %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsValidation reports whether err is, or wraps, a validation Error
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// FromValidator converts validator.ValidationErrors into an Error naming the failing fields.
// Any other error is wrapped as the cause.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &Error{Message: "invalid input", Cause: err}
	}

	fields := make([]string, 0, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return &Error{
		Field:   strings.Join(fields, ","),
		Message: strings.Join(msgs, "; "),
		Cause:   err,
	}
}
