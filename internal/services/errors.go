package services

import "errors"

// Errors returned by the services. Handlers map them to HTTP statuses and messages.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrNotFound           = errors.New("user not found")
	ErrDeliveryFailed     = errors.New("failed to deliver otp")
)
