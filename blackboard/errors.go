package blackboard

import (
	"errors"

	"github.com/oshokin/blackboard/blackboard/store"
)

var (
	// ErrOptionsConflict is returned when Configure is called with options that
	// differ from the ones the process-wide store was created with.
	ErrOptionsConflict = errors.New("blackboard already initialized with different options")
	// ErrOptionsInvalid is returned when Configure receives invalid options.
	ErrOptionsInvalid = errors.New("invalid blackboard options")
)

var _ error = (*Error)(nil)

// ErrorName represents the name of an error.
type ErrorName string

const (
	// InvalidKeyError is emitted when a key is not valid UTF-8.
	InvalidKeyError ErrorName = "InvalidKeyError"

	// InvalidOptionsError is emitted when options fail validation.
	InvalidOptionsError ErrorName = "InvalidOptionsError"

	// OptionsConflictError is emitted when the store is re-configured after creation.
	OptionsConflictError ErrorName = "OptionsConflictError"
)

// Error represents a structured error emitted at the blackboard boundary.
type Error struct {
	// Name contains one of the strings associated with an error name.
	Name ErrorName `json:"name"`

	// Message represents message or description associated with the given error name.
	Message string `json:"message"`

	cause error
}

// NewError returns a new Error instance.
func NewError(name ErrorName, message string) *Error {
	return &Error{
		Name:    name,
		Message: message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Name) + ": " + e.Message
}

// Unwrap returns the classified error, so errors.Is keeps working on sentinels.
func (e *Error) Unwrap() error {
	return e.cause
}

// classifyError turns internal Go errors into structured blackboard errors.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var bbErr *Error
	if errors.As(err, &bbErr) {
		return bbErr
	}

	var name ErrorName

	switch {
	case errors.Is(err, store.ErrInvalidKey):
		name = InvalidKeyError
	case errors.Is(err, ErrOptionsConflict):
		name = OptionsConflictError
	case errors.Is(err, ErrOptionsInvalid),
		errors.Is(err, store.ErrInvalidShardCount),
		errors.Is(err, store.ErrInvalidHashStrategy):
		name = InvalidOptionsError
	default:
		return err
	}

	classified := NewError(name, err.Error())
	classified.cause = err

	return classified
}
