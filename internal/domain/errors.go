package domain

import "errors"

// ErrInvalidInput marks a malformed request payload reaching a core
// operation. It is surfaced to the caller as a rejected request, never
// silently coerced.
var ErrInvalidInput = errors.New("invalid input")
