// Package objectstore defines the interface for the single owner of every
// object in a project graph.
//
// # Why Object Store Exists
//
// A project file has no real nesting: every relationship is an identifier
// pointing into one flat map. Parent/child and target/dependency/proxy edges
// form cycles, so no object can own another. The store is therefore the one
// place that owns objects; every edge in the graph is a non-owning reference
// resolved through it (see internal/objectref).
//
// The store is agnostic to project semantics. It is a typed, queryable
// multimap keyed by identity, with an incrementally maintained index by kind
// so queries like "all groups" never scan the whole graph.
//
// # Lifecycle
//
//  1. **Created** by a document, empty
//  2. **Populated** by the decoder (permanent ids) or the mutation API
//     (temporary ids)
//  3. **Rekeyed** by the reference generator when temporary ids become
//     permanent
//  4. **Released** when the owning document is discarded; outstanding
//     references then fail with a released error instead of resolving stale
//     objects
package objectstore

import (
	"errors"

	"github.com/vk/pbxproj/internal/objectid"
)

// Store errors.
var (
	// ErrDuplicateID indicates an object is already stored under the id.
	ErrDuplicateID = errors.New("object id already in store")
	// ErrNotFound indicates no object is stored under the id.
	ErrNotFound = errors.New("object not found in store")
	// ErrReleased indicates the store has been released by its owner.
	ErrReleased = errors.New("object store released")
)

// Object is anything the store can own: it has an identity and a kind.
type Object interface {
	// ID returns the object's current identifier.
	ID() objectid.ID
	// Kind returns the object's discriminant, e.g. "PBXGroup".
	Kind() string
}

// Store is the interface for the sole owner of all graph objects.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use. Mutations are linearizable
// with respect to each other, and a Rekey MUST look atomic to readers: a
// concurrent Get never observes the object missing under both ids.
type Store interface {
	// Add stores an object under its own ID().
	//
	// Returns ErrDuplicateID if the id is taken and ErrReleased after Release.
	Add(obj Object) error

	// AddAs stores an object under an explicit id. Callers that hold the
	// object's identity lock use this to avoid re-entering ID().
	AddAs(id objectid.ID, obj Object) error

	// Get retrieves an object by id.
	Get(id objectid.ID) (Object, bool)

	// Delete removes an object and returns it, if present.
	Delete(id objectid.ID) (Object, bool)

	// Rekey moves the object stored under oldID to newID in one step.
	//
	// Returns ErrNotFound if oldID is absent and ErrDuplicateID if newID is
	// taken by another object.
	Rekey(oldID, newID objectid.ID) error

	// OfKind returns a snapshot of all objects of one kind, sorted by id.
	OfKind(kind string) []Object

	// All returns a snapshot of every object, sorted by id.
	All() []Object

	// Len returns the number of stored objects.
	Len() int

	// Generation returns a counter that changes whenever an object leaves an
	// id (Delete, Rekey) or the store is released. Reference caches compare it
	// to detect staleness.
	Generation() uint64

	// Release marks the store as gone. Subsequent operations fail or return
	// nothing.
	Release()

	// Released reports whether Release has been called.
	Released() bool
}
