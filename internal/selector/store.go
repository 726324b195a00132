package selector

import (
	"cmp"
	"slices"
)

// Store holds the currently selected items of a multi-select screen, keyed by
// the route's identity rule. Keys are unique. Items are ordered by the first
// time their identity was ever added, so deselecting and reselecting an item
// puts it back in its original place.
type Store struct {
	identity IdentityFunc
	items    map[string]Item
	rank     map[string]uint64
	next     uint64
}

// NewStore returns an empty store using the given identity rule.
func NewStore(identity IdentityFunc) *Store {
	return &Store{
		identity: identity,
		items:    make(map[string]Item),
		rank:     make(map[string]uint64),
	}
}

// Toggle removes the item when selected and inserts it otherwise. It reports
// whether the item is selected afterwards. Items without an identity are
// ignored.
func (s *Store) Toggle(item Item) bool {
	key := s.identity(item)
	if key == "" {
		return false
	}
	if _, ok := s.items[key]; ok {
		delete(s.items, key)
		return false
	}
	s.insert(key, item)
	return true
}

// Add inserts the item unless it is already selected.
func (s *Store) Add(item Item) bool {
	key := s.identity(item)
	if key == "" {
		return false
	}
	if _, ok := s.items[key]; ok {
		return false
	}
	s.insert(key, item)
	return true
}

// Remove drops the item by identity. Removing an unselected item is a no-op.
func (s *Store) Remove(item Item) bool {
	return s.RemoveKey(s.identity(item))
}

// RemoveKey drops an identity. It reports whether anything was removed.
func (s *Store) RemoveKey(key string) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	return true
}

// Has reports whether the item is selected.
func (s *Store) Has(item Item) bool {
	return s.HasKey(s.identity(item))
}

// HasKey reports whether the identity is selected.
func (s *Store) HasKey(key string) bool {
	if key == "" {
		return false
	}
	_, ok := s.items[key]
	return ok
}

// Len returns the number of selected items.
func (s *Store) Len() int {
	return len(s.items)
}

// Values returns the selected items in first-added order. The result is
// never nil.
func (s *Store) Values() []Item {
	keys := s.orderedKeys()
	values := make([]Item, 0, len(keys))
	for _, key := range keys {
		values = append(values, s.items[key])
	}
	return values
}

// Keys returns the selected identities as a set.
func (s *Store) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.items))
	for key := range s.items {
		keys[key] = struct{}{}
	}
	return keys
}

// Clear removes every selection and forgets insertion history.
func (s *Store) Clear() {
	s.items = make(map[string]Item)
	s.rank = make(map[string]uint64)
	s.next = 0
}

// Hydrate pre-populates the store from persisted identities, looking each one
// up in candidates. Unknown identities are skipped. It returns how many items
// were added.
func (s *Store) Hydrate(keys []string, candidates []Item) int {
	if len(keys) == 0 || len(candidates) == 0 {
		return 0
	}
	index := make(map[string]Item, len(candidates))
	for _, item := range candidates {
		if key := s.identity(item); key != "" {
			index[key] = item
		}
	}
	added := 0
	for _, key := range keys {
		if item, ok := index[key]; ok && s.Add(item) {
			added++
		}
	}
	return added
}

func (s *Store) insert(key string, item Item) {
	s.items[key] = item
	if _, ok := s.rank[key]; !ok {
		s.rank[key] = s.next
		s.next++
	}
}

func (s *Store) orderedKeys() []string {
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Compare(s.rank[a], s.rank[b])
	})
	return keys
}
