package workflow

import "errors"

// ErrBusy rejects a submission while a previous one is still in flight.
// It is raised synchronously, before any network activity.
var ErrBusy = errors.New("analysis already in progress")

// ValidationError rejects input locally; no request leaves the process.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
