// Package httperr turns failed HTTP responses into a single error type
// carrying a user-facing, localized message and the original status code.
package httperr

import (
	"errors"
	"net/http"
)

// Error is a normalized HTTP failure. It is the only error shape callers
// need to branch on, by Status.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the status of the first *Error in err's chain
func StatusOf(err error) (int, bool) {
	var herr *Error

	if errors.As(err, &herr) {
		return herr.Status, true
	}

	return 0, false
}

// IsUnauthorized reports whether err is a normalized 401
func IsUnauthorized(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == http.StatusUnauthorized
}
