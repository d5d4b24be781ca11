// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrCapacityExceeded signals that a booking would push an
// event past its ticket capacity.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrCapacityExceeded is returned by the booking engine when the
// requested ticket count does not fit into the event's remaining
// capacity. Handlers should translate this into an HTTP 409 response.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error code 1062 on unique constraint violation).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL foreign key
// failure (1452 on insert/update against a missing parent row).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1452")
}

// isRetryableTx reports whether err is a MySQL deadlock (1213) or lock
// wait timeout (1205). Transactions failing this way may be retried.
func isRetryableTx(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1213") || strings.Contains(msg, "1205")
}
