package entity

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownAccessor is returned when a descriptor names an accessor kind
	// nothing is registered for.
	ErrUnknownAccessor = errors.New("unknown accessor kind")
	// ErrAccessorConstruct is returned when a registered constructor fails.
	ErrAccessorConstruct = errors.New("accessor cannot be constructed")
	// ErrAccessorValue is returned when an accessor rejects a value.
	ErrAccessorValue = errors.New("accessor rejected value")
	// ErrDisposed is returned by field access on a disposed entity.
	ErrDisposed = errors.New("entity is disposed")
)

// AccessError reports a field that could not be accessed because its
// accessor could not be resolved, constructed or updated. It indicates a
// schema or wiring defect and is always returned to the direct caller.
type AccessError struct {
	Field    string
	Accessor string
	Err      error
}

func (e *AccessError) Error() string {
	if e.Accessor == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("field %q: accessor %q: %v", e.Field, e.Accessor, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// IsAccessError reports whether err carries an *AccessError.
func IsAccessError(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}
