package domain

import "errors"

// Domain errors. The HTTP layer maps each to a specific 4xx status; anything
// else surfaces as a 500 and is never retried.
var (
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrResourceNotFound is returned when a referenced entity does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrMaxDistance is returned when the user is more than 100 m from the gym.
	ErrMaxDistance = errors.New("user is too far from the gym")
	// ErrMaxNumberOfCheckIns is returned on a second check-in in the same
	// UTC calendar day.
	ErrMaxNumberOfCheckIns = errors.New("user already checked in today")
	// ErrLateCheckInValidation is returned when the 20-minute validation
	// window has passed.
	ErrLateCheckInValidation = errors.New("check-in can no longer be validated")
	// ErrCheckInAlreadyValidated is returned when validating twice.
	ErrCheckInAlreadyValidated = errors.New("check-in already validated")
)
