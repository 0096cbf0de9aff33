package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these to
// HTTP statuses; anything else is an infrastructure failure and surfaces to
// clients only as a generic message.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
