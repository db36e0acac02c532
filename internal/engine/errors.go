package engine

import "errors"

// Sentinel kinds for mutation failures. Every operation reports failure via
// an error wrapping one of these; the document passed in is never left
// partially updated.
var (
	// ErrInvalidName is returned when an empty or whitespace-only string is
	// given where a name is required.
	ErrInvalidName = errors.New("invalid name")

	// ErrDuplicateName is returned on a name collision for a path, method,
	// schema or property.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotFound is returned when an operation needs an existing path,
	// method, schema or property that is absent.
	ErrNotFound = errors.New("not found")

	// ErrNotObject is returned when a property operation targets a schema
	// that is not an object.
	ErrNotObject = errors.New("schema is not an object")
)
