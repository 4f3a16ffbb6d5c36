package repositories

import "errors"

// Storage-level sentinel errors. Services translate these into their own
// taxonomy; handlers never see them directly.
var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert violates a unique index,
	// e.g. a second user with the same email or a second submission by the
	// same participant in one contest.
	ErrDuplicateKey = errors.New("duplicate key")
)
