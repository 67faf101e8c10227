package domain

import "errors"

// Domain errors returned by repository implementations and the service layer.

var (
	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTaskState indicates a state value outside the defined enumerants.
	ErrInvalidTaskState = errors.New("invalid task state")

	// ErrInvalidSortKey indicates an unrecognized sort key token.
	ErrInvalidSortKey = errors.New("invalid sort key")
)
