package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// resource does not exist in the remote store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, end date before start date, coordinate out
// of range). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDecode is returned by the wire package when a stored row cannot be
// converted into its domain representation. Decode failures never surface to
// API clients; the service logs them and drops the affected row.
var ErrDecode = errors.New("decode error")
