package usecase

import "errors"

var (
	// ErrEntryNotFound is returned when an entry does not exist or belongs to another user.
	// The two cases are deliberately indistinguishable.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidEntry is returned when entry input fails validation.
	ErrInvalidEntry = errors.New("invalid entry")
)
