// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	// Both cases share one error so callers cannot tell which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput is returned when registration input fails validation.
	ErrInvalidInput = errors.New("invalid input")
)
