package services

import "errors"

// Error taxonomy shared by the services. Handlers map these onto HTTP status
// codes; everything else surfaces as an internal error.
var (
	// ErrUnauthorized means the request carried no usable credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the principal is valid but may not act on the
	// resource, because of an identity mismatch or a missing role.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means a unique key already exists, e.g. registering an
	// email twice.
	ErrConflict = errors.New("conflict")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
