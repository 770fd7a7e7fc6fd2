package services

import (
	"errors"
	"fmt"
)

// Gateway failure taxonomy. Callers treat every kind identically (fall
// back to a deterministic reply); the distinction exists for logging.
var (
	// ErrUnconfigured means no credential has been set.
	ErrUnconfigured = errors.New("gateway is not configured")

	// ErrEmptyResponse means the backend replied but no usable text
	// could be extracted from the body.
	ErrEmptyResponse = errors.New("backend returned no usable text")
)

// TransportError covers network faults and non-success HTTP statuses.
// Status is zero when the fault happened below HTTP.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: status %d", e.Status)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
