// Package collections provides small generic containers used by the
// scoring and table-loading packages: multimaps, multitables, shuffled
// views, and map utilities.
package collections

import "slices"

// ListMultimap maps keys to ordered lists of values. Duplicate values
// under the same key are kept.
type ListMultimap[K comparable, V any] struct {
	entries map[K][]V
	size    int
}

// NewListMultimap creates an empty ListMultimap.
func NewListMultimap[K comparable, V any]() *ListMultimap[K, V] {
	return &ListMultimap[K, V]{entries: make(map[K][]V)}
}

// Put appends value under key.
func (m *ListMultimap[K, V]) Put(key K, value V) {
	m.entries[key] = append(m.entries[key], value)
	m.size++
}

// Get returns a copy of the values stored under key in insertion order,
// or nil when the key is absent.
func (m *ListMultimap[K, V]) Get(key K) []V {
	values, ok := m.entries[key]
	if !ok {
		return nil
	}
	return slices.Clone(values)
}

// Keys returns the distinct keys in unspecified order.
func (m *ListMultimap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the total number of key-value pairs.
func (m *ListMultimap[K, V]) Len() int {
	return m.size
}

// ForEach calls fn for every key-value pair. Keys are visited in
// unspecified order, values under one key in insertion order.
func (m *ListMultimap[K, V]) ForEach(fn func(key K, value V)) {
	for key, values := range m.entries {
		for _, value := range values {
			fn(key, value)
		}
	}
}

// SetMultimap maps keys to sets of values. Putting a duplicate
// key-value pair is a no-op.
type SetMultimap[K comparable, V comparable] struct {
	entries map[K]map[V]struct{}
	size    int
}

// NewSetMultimap creates an empty SetMultimap.
func NewSetMultimap[K comparable, V comparable]() *SetMultimap[K, V] {
	return &SetMultimap[K, V]{entries: make(map[K]map[V]struct{})}
}

// Put records value under key.
func (m *SetMultimap[K, V]) Put(key K, value V) {
	set, ok := m.entries[key]
	if !ok {
		set = make(map[V]struct{})
		m.entries[key] = set
	}
	if _, dup := set[value]; dup {
		return
	}
	set[value] = struct{}{}
	m.size++
}

// Get returns the values stored under key in unspecified order, or nil
// when the key is absent.
func (m *SetMultimap[K, V]) Get(key K) []V {
	set, ok := m.entries[key]
	if !ok {
		return nil
	}
	values := make([]V, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	return values
}

// Contains reports whether the key-value pair is present.
func (m *SetMultimap[K, V]) Contains(key K, value V) bool {
	set, ok := m.entries[key]
	if !ok {
		return false
	}
	_, ok = set[value]
	return ok
}

// Keys returns the distinct keys in unspecified order.
func (m *SetMultimap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of distinct key-value pairs.
func (m *SetMultimap[K, V]) Len() int {
	return m.size
}

// ForEach calls fn for every distinct key-value pair in unspecified
// order.
func (m *SetMultimap[K, V]) ForEach(fn func(key K, value V)) {
	for key, set := range m.entries {
		for value := range set {
			fn(key, value)
		}
	}
}
