package remote

import (
	"errors"
	"fmt"
)

// TransportError reports an attempt that produced no HTTP response at all,
// either because the network was unreachable or because the attempt timed out.
type TransportError struct {
	Strategy string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("remote: strategy %q transport failure: %v", e.Strategy, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports an attempt that received a response with a non-success
// status code.
type StatusError struct {
	Strategy string
	Status   int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: strategy %q returned status %d", e.Strategy, e.Status)
}

// ExhaustedError reports that every strategy in the chain failed. Attempts
// holds the per-strategy failures in execution order.
type ExhaustedError struct {
	Attempts []error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("remote: all %d strategies failed: %v", len(e.Attempts), errors.Join(e.Attempts...))
}

// Unwrap exposes the individual attempt errors for errors.Is/As inspection.
func (e *ExhaustedError) Unwrap() []error {
	return e.Attempts
}

// IsExhausted reports whether err indicates that a strategy chain ran out of
// candidates.
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}
