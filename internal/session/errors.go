package session

import (
	"errors"
	"fmt"
)

// BusyError is returned when an operation of the same kind is already running
type BusyError struct {
	Operation string
	Cause     error
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s already in progress", e.Operation)
}

func (e *BusyError) Unwrap() error {
	return e.Cause
}

// IsBusy reports whether err is, or wraps, a BusyError
func IsBusy(err error) bool {
	var be *BusyError
	return errors.As(err, &be)
}
