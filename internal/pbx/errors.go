package pbx

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is returned when the top-level structure is missing
	// or has the wrong shape.
	ErrMalformedDocument = errors.New("malformed project document")
	// ErrUnknownObjectKind is returned for a record whose isa is not supported.
	ErrUnknownObjectKind = errors.New("unknown object kind")
	// ErrMissingField is returned when a record lacks a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when a field has the wrong shape.
	ErrInvalidField = errors.New("invalid field value")
	// ErrInvalidGroupPath is returned when a full path cannot be derived.
	ErrInvalidGroupPath = errors.New("invalid group path")
	// ErrTemporaryID is returned when an object with a temporary identifier
	// would be written.
	ErrTemporaryID = errors.New("object has a temporary identifier")
	// ErrEncoding is returned when an object cannot be turned into a record.
	ErrEncoding = errors.New("cannot encode object")
)

// DecodeError locates a structural decode failure.
type DecodeError struct {
	ObjectID string
	Kind     string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("object %s", e.ObjectID)
	if e.Kind != "" {
		msg += fmt.Sprintf(" (%s)", e.Kind)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
