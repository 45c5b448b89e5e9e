package service

import "errors"

// ValidationError reports malformed or conflicting input with per-field
// messages. Handlers serialize Fields directly into the 422 response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// ErrWrongPassword is returned when the account password check fails. It is
// deliberately a different kind from ValidationError: the password is only
// checked after the input shape passes, and handlers map it to 401 rather
// than 422.
var ErrWrongPassword = errors.New("current password is incorrect")

// ErrInvalidOrExpiredLink covers every verification failure: no pending
// record, digest mismatch, or past expiry. Callers cannot tell which case
// occurred.
var ErrInvalidOrExpiredLink = errors.New("invalid or expired link")
