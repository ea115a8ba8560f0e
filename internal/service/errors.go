package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; everything else surfaces as an internal error.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrSlotTaken         = errors.New("time slot is already booked")
	ErrInvalidTransition = errors.New("invalid appointment status transition")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrExpiredCode       = errors.New("verification code has expired")
	ErrEmailTaken        = errors.New("email already registered")
	ErrEmailNotVerified  = errors.New("email has not been verified")
)
