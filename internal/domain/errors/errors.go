package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	// ErrDuplicateEmail is returned when signup hits the unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("wrong email or password")
	// ErrAccessDenied covers both "not found" and "not yours" on mutation so the
	// existence of other users' bookmarks is not leaked.
	ErrAccessDenied = errors.New("access denied")
	// ErrBookmarkNotFound is returned on reads of absent or foreign bookmarks.
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrUserNotFound is returned when a token subject no longer resolves.
	ErrUserNotFound = errors.New("user not found")
)
