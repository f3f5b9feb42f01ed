// Package memory implements the repository contracts on a process-local
// map. It exists so the domain layer can run (and be tested) with no
// database; through the repository interfaces it is indistinguishable
// from the PostgreSQL backend.
package memory

import (
	"sync"

	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

// Store is a generic keyed store guarding every operation with one
// mutex, so check-then-insert sequences are single critical sections.
// List with no predicate yields insertion order.
type Store[T any] struct {
	mu    sync.RWMutex
	key   func(*T) string
	touch func(*T)
	clone func(*T) *T
	items map[string]*T
	order []string
}

// NewStore creates a store. key extracts the id, touch bumps the update
// timestamp, clone produces an independent copy handed to callers.
func NewStore[T any](key func(*T) string, touch func(*T), clone func(*T) *T) *Store[T] {
	return &Store[T]{
		key:   key,
		touch: touch,
		clone: clone,
		items: make(map[string]*T),
	}
}

// Add inserts an item, CONFLICT if the key already exists.
func (s *Store[T]) Add(item *T) error {
	return s.AddUnique(item, nil, "")
}

// AddUnique inserts an item inside one critical section, failing with
// CONFLICT if the key exists or if conflicts matches any stored item.
// This closes the check-then-insert race for unique attributes.
func (s *Store[T]) AddUnique(item *T, conflicts func(*T) bool, conflictMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.key(item)
	if _, exists := s.items[id]; exists {
		return apperrors.NewConflictError("id " + id + " already exists")
	}
	if conflicts != nil {
		for _, existing := range s.items {
			if conflicts(existing) {
				return apperrors.NewConflictError(conflictMsg)
			}
		}
	}

	s.items[id] = s.clone(item)
	s.order = append(s.order, id)
	return nil
}

// Get returns a copy of the item, or false on miss.
func (s *Store[T]) Get(id string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return s.clone(item), true
}

// Find returns a copy of the first stored item (in insertion order)
// matching the predicate.
func (s *Store[T]) Find(match func(*T) bool) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if item := s.items[id]; match(item) {
			return s.clone(item), true
		}
	}
	return nil, false
}

// List returns copies of all items matching the predicate (nil means
// all), in insertion order. Each call is independent and restartable.
func (s *Store[T]) List(match func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*T, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		if match == nil || match(item) {
			out = append(out, s.clone(item))
		}
	}
	return out
}

// Replace swaps the stored item for the given one, touching its update
// timestamp. NOT_FOUND if the key is absent; CONFLICT if conflicts
// matches any other stored item (e.g. an email moving onto a taken one).
func (s *Store[T]) Replace(item *T, conflicts func(*T) bool, conflictMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.key(item)
	if _, exists := s.items[id]; !exists {
		return apperrors.NewNotFoundError("id " + id + " not found")
	}
	if conflicts != nil {
		for otherID, existing := range s.items {
			if otherID != id && conflicts(existing) {
				return apperrors.NewConflictError(conflictMsg)
			}
		}
	}

	s.touch(item)
	s.items[id] = s.clone(item)
	return nil
}

// Delete removes an item, reporting whether it existed.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// DeleteWhere removes every item matching the predicate, returning the
// number removed.
func (s *Store[T]) DeleteWhere(match func(*T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		if match(s.items[id]) {
			delete(s.items, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}
