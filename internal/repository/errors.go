// Package repository wraps all database access behind narrow interfaces.
// The sentinel errors below are the only error values that cross the
// repository boundary; raw driver errors are logged here and never
// propagated, so handlers can map sentinels straight to HTTP statuses.
package repository

import "errors"

// ErrNotFound is returned when no row matches. Handlers translate it
// into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint, such as a duplicate email or a second active reset token.
// Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned for any other storage failure. The underlying
// cause is logged with operation context at the repository boundary.
var ErrInternal = errors.New("internal storage error")
