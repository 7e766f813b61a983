// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, int](16)
//	c.Set("key", 42)
//	v, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

import (
	"container/list"
	"sync"
)

// Cache is a thread-safe LRU cache holding at most limit entries.
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	limit  int
	order  *list.List // front is most recently used
	items  map[K]*list.Element
	hits   uint64
	misses uint64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a cache holding at most limit entries. A limit below 1 is
// treated as 1.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		limit: max(limit, 1),
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	for c.order.Len() > c.limit {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry[K, V]).key)
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
	return ok
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.items)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats contains cache statistics.
type Stats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:      c.order.Len(),
		Capacity: c.limit,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}
