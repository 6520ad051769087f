package profile

import "errors"

var (
	// ErrNotFound is returned when a profile name does not resolve to a file.
	ErrNotFound = errors.New("profile not found")

	// ErrInvalidName is returned for names that cannot be used as a file stem.
	ErrInvalidName = errors.New("invalid profile name")
)
