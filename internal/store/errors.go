package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a card id is not in the catalog.
	ErrNotFound = errors.New("card not found")
	// ErrInvalidArgument is returned for malformed requests, e.g. a
	// comparison of a card against itself or an out-of-range sample count.
	ErrInvalidArgument = errors.New("invalid argument")
)

// PersistenceError reports a durable write that could not complete. The
// in-memory mutation has already been applied when this is returned; the
// change may not survive a restart.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
