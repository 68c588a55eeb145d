// Package objectref provides the reference cell: a mutable, lockable handle
// that resolves "the object currently known by identifier X" through an
// object store.
//
// # Shared Identity
//
// An object owns exactly one cell, and every edge that points at the object
// holds that same cell. Fixing a temporary id (Fix) or re-homing an object
// (Invalidate, MoveTo) therefore changes the id seen by every referrer at
// once, and the object's own ID() reads through the cell as well.
//
// # Caching
//
// A cell caches the last resolved object together with the store generation
// it was resolved at. While the generation is unchanged no object has left
// any id, so the cache is still valid; otherwise the next Resolve looks the
// id up again. A cell is never authoritative after a delete: the store is.
//
// # Locking
//
// Each cell has its own RWMutex; there is no global lock. Fix and Invalidate
// hold the cell lock across the store rekey, so a concurrent Resolve of the
// same cell waits instead of observing a missing object.
package objectref
