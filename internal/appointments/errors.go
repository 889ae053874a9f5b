package appointments

import "errors"

var (
	// ErrMissingFields is returned when a required field is absent or empty
	ErrMissingFields = errors.New("all fields are required")

	// ErrNotFound is returned when no appointment matches the given id
	ErrNotFound = errors.New("patient not found")
)
