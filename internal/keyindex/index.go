package keyindex

import "github.com/gogpu/atlas/boxpack"

// Index is a two-way mapping between content keys and packing IDs.
// Each key carries a value of type V stored alongside its ID.
type Index[K comparable, V any] struct {
	entries map[K]entry[V]
	keys    map[boxpack.ID]K
}

// entry holds the packing ID and value of a key.
type entry[V any] struct {
	id    boxpack.ID
	value V
}

// New creates an empty index.
func New[K comparable, V any]() *Index[K, V] {
	return &Index[K, V]{
		entries: make(map[K]entry[V]),
		keys:    make(map[boxpack.ID]K),
	}
}

// Get returns the ID and value recorded for key.
func (x *Index[K, V]) Get(key K) (boxpack.ID, V, bool) {
	e, ok := x.entries[key]
	if !ok {
		var zero V
		return boxpack.InvalidID, zero, false
	}
	return e.id, e.value, true
}

// Key returns the key recorded for id.
func (x *Index[K, V]) Key(id boxpack.ID) (K, bool) {
	key, ok := x.keys[id]
	return key, ok
}

// Set records that key is packed under id.
// Any previous mapping of key or of id is replaced.
func (x *Index[K, V]) Set(key K, id boxpack.ID, value V) {
	if old, ok := x.entries[key]; ok {
		delete(x.keys, old.id)
	}
	if oldKey, ok := x.keys[id]; ok {
		delete(x.entries, oldKey)
	}
	x.entries[key] = entry[V]{id: id, value: value}
	x.keys[id] = key
}

// Delete removes key from the index.
// Returns true if the key was found and removed.
func (x *Index[K, V]) Delete(key K) bool {
	e, ok := x.entries[key]
	if !ok {
		return false
	}
	delete(x.entries, key)
	delete(x.keys, e.id)
	return true
}

// DeleteID removes the key recorded for id and returns it.
func (x *Index[K, V]) DeleteID(id boxpack.ID) (K, bool) {
	key, ok := x.keys[id]
	if !ok {
		return key, false
	}
	delete(x.keys, id)
	delete(x.entries, key)
	return key, true
}

// Prune removes every entry whose ID is not live and returns the number
// of entries removed.
func (x *Index[K, V]) Prune(live func(boxpack.ID) bool) int {
	removed := 0
	for id, key := range x.keys {
		if live(id) {
			continue
		}
		delete(x.keys, id)
		delete(x.entries, key)
		removed++
	}
	return removed
}

// Len returns the number of keys in the index.
func (x *Index[K, V]) Len() int {
	return len(x.entries)
}

// Clear removes all entries.
func (x *Index[K, V]) Clear() {
	clear(x.entries)
	clear(x.keys)
}
