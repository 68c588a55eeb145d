package objectref

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectstore"
)

// Cell is a non-owning, shared handle on the object stored under an id.
type Cell struct {
	mu        sync.RWMutex
	id        objectid.ID
	store     objectstore.Store
	cached    objectstore.Object
	cachedGen uint64
}

// New creates a cell for an id in a store. The object does not need to exist
// yet; resolution is lazy.
func New(store objectstore.Store, id objectid.ID) *Cell {
	return &Cell{id: id, store: store}
}

// NewTemporary creates a cell with a fresh temporary id.
func NewTemporary(store objectstore.Store) *Cell {
	return New(store, objectid.NewTemporary())
}

// ID returns the current identifier. A nil cell has the zero id.
func (c *Cell) ID() objectid.ID {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Store returns the store the cell resolves through.
func (c *Cell) Store() objectstore.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// String returns the identifier text.
func (c *Cell) String() string {
	return c.ID().String()
}

// Resolve returns the referenced object.
func (c *Cell) Resolve() (objectstore.Object, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil reference", ErrObjectNotFound)
	}

	c.mu.RLock()
	store, cached, cachedGen := c.store, c.cached, c.cachedGen
	c.mu.RUnlock()

	if store == nil || store.Released() {
		return nil, ErrStoreReleased
	}
	if cached != nil && cachedGen == store.Generation() {
		return cached, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The generation is read before the lookup so a delete racing with it
	// leaves the cache stale rather than wrong.
	gen := c.store.Generation()
	obj, ok := c.store.Get(c.id)
	if !ok {
		c.cached = nil
		if c.store.Released() {
			return nil, ErrStoreReleased
		}
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, c.id)
	}
	c.cached, c.cachedGen = obj, gen
	return obj, nil
}

// Fix converts a temporary id into a permanent one, re-homing the object in
// the store under the new id.
func (c *Cell) Fix(newID objectid.ID) error {
	if newID.IsZero() || newID.IsTemporary() {
		return fmt.Errorf("cannot fix to %q: not a permanent identifier", newID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.id == newID {
		return nil
	}
	if !c.id.IsTemporary() {
		return fmt.Errorf("%w: %s", ErrNotTemporary, c.id)
	}
	return c.rekeyLocked(newID)
}

// Invalidate replaces the id with a fresh temporary one. The object must be
// fixed again before it can be written.
func (c *Cell) Invalidate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rekeyLocked(objectid.NewTemporary())
}

// MoveTo transfers the object into another store under a fresh temporary id.
func (c *Cell) MoveTo(dst objectstore.Store) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil || c.store.Released() || dst.Released() {
		return ErrStoreReleased
	}
	obj, ok := c.store.Delete(c.id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, c.id)
	}
	newID := objectid.NewTemporary()
	if err := dst.AddAs(newID, obj); err != nil {
		// Put the object back where it was; the old id is still free.
		if restoreErr := c.store.AddAs(c.id, obj); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}
	c.id, c.store, c.cached = newID, dst, nil
	return nil
}

func (c *Cell) rekeyLocked(newID objectid.ID) error {
	if c.store == nil || c.store.Released() {
		return ErrStoreReleased
	}
	if err := c.store.Rekey(c.id, newID); err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, c.id)
		}
		return err
	}
	c.id = newID
	c.cached = nil
	return nil
}

// As resolves a cell and asserts the object's concrete type.
func As[T any](c *Cell) (T, error) {
	var zero T
	obj, err := c.Resolve()
	if err != nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %s", ErrKindMismatch, c.ID(), obj.Kind())
	}
	return typed, nil
}
