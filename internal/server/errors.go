package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/validation"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *validation.Error
		busyErr        *session.BusyError
		malformedErr   *assistant.MalformedResponseError
		unavailableErr *assistant.ServiceUnavailableError
		maxBytesErr    *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &busyErr), errors.Is(err, export.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &malformedErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
