package usecase

import "errors"

var (
	// ErrValidation marks request input the caller can fix. The wrapped
	// message lists the offending fields.
	ErrValidation = errors.New("validation failed")

	// ErrBookingNotFound means no booking exists for the given email.
	ErrBookingNotFound = errors.New("booking not found")
)
