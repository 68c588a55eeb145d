package objectref

import "errors"

// Reference errors. They surface lazily, only when a cell is resolved or
// re-homed.
var (
	// ErrObjectNotFound indicates no object is stored under the cell's id.
	ErrObjectNotFound = errors.New("object not found")
	// ErrStoreReleased indicates the cell's store no longer exists.
	ErrStoreReleased = errors.New("store released")
	// ErrKindMismatch indicates the resolved object has an unexpected type.
	ErrKindMismatch = errors.New("unexpected object kind")
	// ErrNotTemporary indicates Fix was called on a permanent identifier.
	ErrNotTemporary = errors.New("identifier is not temporary")
)
