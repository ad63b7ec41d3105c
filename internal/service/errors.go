package service

import "errors"

// Sentinel errors returned by the services. Handlers map these to HTTP
// status codes with errors.Is.
var (
	ErrWordNotFound     = errors.New("word not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidUnit      = errors.New("unit number must be between 1 and 10")
	ErrNoActiveSession  = errors.New("no active placement session")
	ErrNoPlacementWords = errors.New("no suitable words for placement test")
)
