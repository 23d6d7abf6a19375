package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is the precondition violation raised for keys that are not valid UTF-8.
	ErrInvalidKey = errors.New("invalid blackboard key")
	// ErrInvalidShardCount is returned when a configured shard count is out of range.
	ErrInvalidShardCount = errors.New("invalid shard count")
	// ErrInvalidHashStrategy is returned when a configured hash strategy is unknown.
	ErrInvalidHashStrategy = errors.New("invalid shard hash strategy")
	// ErrInvalidKind is returned when a Kind value does not name one of the three tables.
	ErrInvalidKind = errors.New("invalid entry kind")
)

// KeyError describes a rejected key. Accessors panic with a *KeyError.
type KeyError struct {
	// Key is the rejected key, quoted when printed.
	Key string
	// Reason tells what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidKey, e.Key, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidKey) hold.
func (e *KeyError) Unwrap() error {
	return ErrInvalidKey
}
