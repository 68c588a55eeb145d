// Package inmemorystore provides an in-memory, thread-safe implementation of
// the objectstore.Store interface.
//
// # Concurrency Model
//
// Unlike a sync.Map, this store keeps the id map and the per-kind index under
// one RWMutex. A Rekey must remove an object from one key and insert it under
// another without any reader seeing the gap, and the kind index must move with
// it; a single lock makes both steps one critical section. Lookups take only
// the read lock.
package inmemorystore

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/objectstore"
)

// Store implements objectstore.Store with maps and a mutex.
type Store struct {
	mu       sync.RWMutex
	objects  map[objectid.ID]objectstore.Object
	byKind   map[string]map[objectid.ID]objectstore.Object
	gen      atomic.Uint64
	released atomic.Bool
}

// New creates a new, empty in-memory object store.
func New() objectstore.Store {
	return &Store{
		objects: make(map[objectid.ID]objectstore.Object),
		byKind:  make(map[string]map[objectid.ID]objectstore.Object),
	}
}

// Add stores an object under its own identifier.
func (s *Store) Add(obj objectstore.Object) error {
	return s.AddAs(obj.ID(), obj)
}

// AddAs stores an object under an explicit identifier.
func (s *Store) AddAs(id objectid.ID, obj objectstore.Object) error {
	if id.IsZero() {
		return fmt.Errorf("cannot store %s with an empty id", obj.Kind())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released.Load() {
		return objectstore.ErrReleased
	}
	if _, exists := s.objects[id]; exists {
		return fmt.Errorf("%w: %s", objectstore.ErrDuplicateID, id)
	}
	s.insertLocked(id, obj)
	return nil
}

// Get retrieves an object by identifier.
func (s *Store) Get(id objectid.ID) (objectstore.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.released.Load() {
		return nil, false
	}
	obj, ok := s.objects[id]
	return obj, ok
}

// Delete removes an object and returns it.
func (s *Store) Delete(id objectid.ID) (objectstore.Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return nil, false
	}
	s.removeLocked(id, obj)
	s.gen.Add(1)
	return obj, true
}

// Rekey moves an object from oldID to newID within one critical section.
func (s *Store) Rekey(oldID, newID objectid.ID) error {
	if oldID == newID {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released.Load() {
		return objectstore.ErrReleased
	}
	obj, ok := s.objects[oldID]
	if !ok {
		return fmt.Errorf("%w: %s", objectstore.ErrNotFound, oldID)
	}
	if _, taken := s.objects[newID]; taken {
		return fmt.Errorf("%w: %s", objectstore.ErrDuplicateID, newID)
	}
	s.removeLocked(oldID, obj)
	s.insertLocked(newID, obj)
	s.gen.Add(1)
	return nil
}

// OfKind returns all objects of one kind, sorted by identifier.
func (s *Store) OfKind(kind string) []objectstore.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.byKind[kind]
	ids := make([]objectid.ID, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	objs := make([]objectstore.Object, 0, len(ids))
	for _, id := range ids {
		objs = append(objs, bucket[id])
	}
	return objs
}

// All returns every stored object, sorted by identifier.
func (s *Store) All() []objectstore.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]objectid.ID, 0, len(s.objects))
	for id := range s.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	objs := make([]objectstore.Object, 0, len(ids))
	for _, id := range ids {
		objs = append(objs, s.objects[id])
	}
	return objs
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Generation returns the staleness counter.
func (s *Store) Generation() uint64 {
	return s.gen.Load()
}

// Release drops every object and marks the store as released.
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.released.Store(true)
	s.objects = make(map[objectid.ID]objectstore.Object)
	s.byKind = make(map[string]map[objectid.ID]objectstore.Object)
	s.gen.Add(1)
}

// Released reports whether Release has been called.
func (s *Store) Released() bool {
	return s.released.Load()
}

func (s *Store) insertLocked(id objectid.ID, obj objectstore.Object) {
	s.objects[id] = obj
	bucket := s.byKind[obj.Kind()]
	if bucket == nil {
		bucket = make(map[objectid.ID]objectstore.Object)
		s.byKind[obj.Kind()] = bucket
	}
	bucket[id] = obj
}

func (s *Store) removeLocked(id objectid.ID, obj objectstore.Object) {
	delete(s.objects, id)
	if bucket := s.byKind[obj.Kind()]; bucket != nil {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(s.byKind, obj.Kind())
		}
	}
}
