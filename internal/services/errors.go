package services

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found")
	ErrNotAvailable      = errors.New("equipment is not available for booking")
	ErrInvalidReference  = errors.New("invalid transaction reference")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
