package backend

import (
	"errors"
	"fmt"

	"github.com/deepmindcheck/web/internal/metrics"
)

// TransportError means the service could not be reached at all: dial
// failures, timeouts, connection resets. The request may never have
// arrived, so callers should treat the outcome as unknown.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError means the service answered but refused or failed the
// request. Message carries the service's own wording when it sent one.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("backend %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func transportErr(op string, err error) error {
	metrics.BackendErrors.WithLabelValues(op, "transport").Inc()
	return &TransportError{Op: op, Err: err}
}

func serviceErr(op string, status int, msg string) error {
	metrics.BackendErrors.WithLabelValues(op, "service").Inc()
	return &ServiceError{Op: op, StatusCode: status, Message: msg}
}
