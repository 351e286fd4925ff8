package cache

import (
	"container/list"
)

// DefaultCapacity is the number of resident entries a Memory cache holds when no
// capacity is given.
const DefaultCapacity = 10

// MemoryOption configures a Memory cache.
type MemoryOption[V any] func(*Memory[V])

// WithCopy installs a copy function applied to values on Put and on Get, so the
// caller and the cache never share mutable state.
func WithCopy[V any](fn func(V) V) MemoryOption[V] {
	return func(m *Memory[V]) {
		m.copy = fn
	}
}

// WithName sets the label used for this cache in metrics.
func WithName[V any](name string) MemoryOption[V] {
	return func(m *Memory[V]) {
		m.name = name
	}
}

// Memory is a bounded in-memory cache with first-in-first-out eviction.
//
// When a Put of a new key finds the cache full, the entry inserted earliest is
// evicted. Overwriting a resident key keeps its position in the queue. Reads do
// not change eviction order.
//
// Memory is not safe for concurrent use.
type Memory[V any] struct {
	name     string
	capacity int
	entries  map[string]*list.Element
	order    *list.List
	copy     func(V) V
}

type memoryEntry[V any] struct {
	key   string
	value V
}

// NewMemory creates a cache holding at most capacity entries. A capacity <= 0
// falls back to DefaultCapacity.
func NewMemory[V any](capacity int, opts ...MemoryOption[V]) *Memory[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	m := &Memory[V]{
		name:     "memory",
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the value stored under key.
func (m *Memory[V]) Get(key string) (V, bool) {
	elem, ok := m.entries[key]
	if !ok {
		CacheMisses.WithLabelValues(m.name).Inc()
		var zero V
		return zero, false
	}

	CacheHits.WithLabelValues(m.name).Inc()
	return m.clone(elem.Value.(*memoryEntry[V]).value), true
}

// Contains reports whether key is resident. It does not touch metrics.
func (m *Memory[V]) Contains(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Put stores a copy of value under key, evicting the oldest entry first if the
// key is new and the cache is full.
func (m *Memory[V]) Put(key string, value V) {
	if elem, ok := m.entries[key]; ok {
		elem.Value.(*memoryEntry[V]).value = m.clone(value)
		return
	}

	if m.order.Len() >= m.capacity {
		m.evictOldest()
	}

	elem := m.order.PushBack(&memoryEntry[V]{key: key, value: m.clone(value)})
	m.entries[key] = elem
	CacheEntries.WithLabelValues(m.name).Set(float64(m.order.Len()))
}

// Delete removes key. Missing keys are ignored.
func (m *Memory[V]) Delete(key string) {
	elem, ok := m.entries[key]
	if !ok {
		return
	}
	m.order.Remove(elem)
	delete(m.entries, key)
	CacheEntries.WithLabelValues(m.name).Set(float64(m.order.Len()))
}

// Len returns the number of resident entries.
func (m *Memory[V]) Len() int {
	return m.order.Len()
}

// Capacity returns the maximum number of resident entries.
func (m *Memory[V]) Capacity() int {
	return m.capacity
}

// Keys returns the resident keys, oldest first.
func (m *Memory[V]) Keys() []string {
	keys := make([]string, 0, m.order.Len())
	for e := m.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*memoryEntry[V]).key)
	}
	return keys
}

func (m *Memory[V]) evictOldest() {
	front := m.order.Front()
	if front == nil {
		return
	}
	entry := m.order.Remove(front).(*memoryEntry[V])
	delete(m.entries, entry.key)
	CacheEvictions.WithLabelValues(m.name).Inc()
}

func (m *Memory[V]) clone(v V) V {
	if m.copy == nil {
		return v
	}
	return m.copy(v)
}
