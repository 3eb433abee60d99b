// Package hashtable implements a fixed-capacity keyed cache.
//
// Buckets are a power of two in number and address their chains by entry
// index, so the table allocates exactly once, in New. Inserting past the
// capacity is a configuration error and panics.
package hashtable

import (
	"fmt"
	"math/bits"
)

const none = -1

type entry[V any] struct {
	key   uint64
	next  int32
	value V
}

type Table[V any] struct {
	heads   []int32
	entries []entry[V]
	count   int
	mask    uint64
}

// New returns a table holding at most capacity entries. capacity must be a
// power of two.
func New[V any](capacity int) *Table[V] {
	if capacity <= 0 || bits.OnesCount(uint(capacity)) != 1 {
		panic(fmt.Sprintf("hashtable: capacity %d is not a power of two", capacity))
	}
	t := &Table[V]{
		heads:   make([]int32, capacity),
		entries: make([]entry[V], capacity),
		mask:    uint64(capacity - 1),
	}
	t.Clear()
	return t
}

// Clear drops every entry. The backing arrays are kept.
func (t *Table[V]) Clear() {
	for i := range t.heads {
		t.heads[i] = none
	}
	t.count = 0
}

func (t *Table[V]) find(key uint64) int32 {
	for i := t.heads[key&t.mask]; i != none; i = t.entries[i].next {
		if t.entries[i].key == key {
			return i
		}
	}
	return none
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key uint64) (*V, bool) {
	i := t.find(key)
	if i == none {
		return nil, false
	}
	return &t.entries[i].value, true
}

// Insert returns the slot for key, creating a zeroed one if the key is new.
// The returned pointer stays valid until the next Clear.
func (t *Table[V]) Insert(key uint64) (v *V, existed bool) {
	if i := t.find(key); i != none {
		return &t.entries[i].value, true
	}
	if t.count == len(t.entries) {
		panic(fmt.Sprintf("hashtable: capacity %d exceeded", len(t.entries)))
	}

	i := int32(t.count)
	bucket := key & t.mask
	t.entries[i] = entry[V]{key: key, next: t.heads[bucket]}
	t.heads[bucket] = i
	t.count++

	return &t.entries[i].value, false
}

// Set stores value under key, overwriting an existing entry in place.
func (t *Table[V]) Set(key uint64, value V) *V {
	v, _ := t.Insert(key)
	*v = value
	return v
}

func (t *Table[V]) Len() int {
	return t.count
}

// Each calls fn for every entry in insertion order until fn returns false.
func (t *Table[V]) Each(fn func(key uint64, v *V) bool) {
	for i := 0; i < t.count; i++ {
		if !fn(t.entries[i].key, &t.entries[i].value) {
			return
		}
	}
}
