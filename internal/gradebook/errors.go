package gradebook

import "errors"

var (
	// ErrMissingField is returned when an id or name is left empty.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateID is returned when a student or subject id is already taken.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidRange is returned for a grade outside [0,100] or with an empty reference.
	ErrInvalidRange = errors.New("grade out of range")
)
