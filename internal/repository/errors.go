// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a resource does not exist or is
// owned by a different user (the two cases are deliberately not
// distinguishable to callers), while ErrConflict signals that an
// operation cannot proceed because of existing state (e.g. saving an
// item twice).
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist or does
// not belong to the requesting user. Handlers translate this into an
// HTTP 404 response without revealing which case occurred.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update collides with
// existing state, such as saving an already-saved item. Handlers
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
