// Package export rasterizes the rendered preview and delivers it as a single-page letter PDF.
package export

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an export is started while another one is still running
var ErrBusy = errors.New("an export is already in progress")

// CaptureError is returned when the preview surface cannot be rasterized
type CaptureError struct {
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("capture failed: %s", e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// EncodeError is returned when the captured bitmap cannot be turned into a PDF
type EncodeError struct {
	Message string
	Cause   error
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("PDF encoding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("PDF encoding failed: %s", e.Message)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// DeliveryError is returned when a finished PDF cannot be handed to its sink
type DeliveryError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("delivery of %s failed: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("delivery of %s failed: %s", e.Filename, e.Message)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
