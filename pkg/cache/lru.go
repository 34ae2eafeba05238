package cache

import (
	"container/list"
)

type lruEntry[K comparable] struct {
	key   K
	value []byte
}

// LRUCache is a byte-bounded LRU cache.
// The sum of stored value lengths never exceeds the capacity; when a Put would
// overflow, least recently used entries are evicted one at a time until the new
// value fits.
//
// LRUCache is not safe for concurrent use. The owner serializes access.
type LRUCache[K comparable] struct {
	capacity int64
	size     int64
	items    map[K]*list.Element
	eviction *list.List
	onEvict  func(key K, value []byte)
}

// NewLRUCache creates a new LRU cache holding at most capacity bytes.
// The capacity must be positive, otherwise it panics.
func NewLRUCache[K comparable](capacity int64) *LRUCache[K] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	return &LRUCache[K]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
}

// SetEvictCallback sets a callback invoked for every entry removed to make room
// or dropped by Clear. Explicit Remove calls and overwrites do not trigger it.
func (c *LRUCache[K]) SetEvictCallback(fn func(key K, value []byte)) {
	c.onEvict = fn
}

// Get retrieves a value from the cache and marks it as most recently used.
func (c *LRUCache[K]) Get(key K) ([]byte, bool) {
	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		return elem.Value.(*lruEntry[K]).value, true
	}
	return nil, false
}

// Peek retrieves a value without touching its recency.
func (c *LRUCache[K]) Peek(key K) ([]byte, bool) {
	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K]).value, true
	}
	return nil, false
}

// Put inserts or overwrites a value and marks it as most recently used.
// A value longer than the whole capacity is rejected with ErrCapacityExceeded;
// in that case nothing is stored under key, including any previous value.
func (c *LRUCache[K]) Put(key K, value []byte) error {
	n := int64(len(value))
	if n > c.capacity {
		if elem, ok := c.items[key]; ok {
			c.unlink(elem)
		}
		return ErrCapacityExceeded
	}

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry[K])
		c.size += n - int64(len(entry.value))
		entry.value = value
		c.eviction.MoveToFront(elem)
	} else {
		c.items[key] = c.eviction.PushFront(&lruEntry[K]{key: key, value: value})
		c.size += n
	}

	// The new entry sits at the front and fits on its own, so this loop
	// never evicts it.
	for c.size > c.capacity {
		c.evictOldest()
	}
	return nil
}

// Remove removes an item from the cache.
// Returns the removed value and true if it existed.
func (c *LRUCache[K]) Remove(key K) ([]byte, bool) {
	if elem, ok := c.items[key]; ok {
		c.unlink(elem)
		return elem.Value.(*lruEntry[K]).value, true
	}
	return nil, false
}

// Len returns the number of entries.
func (c *LRUCache[K]) Len() int {
	return c.eviction.Len()
}

// Size returns the number of resident bytes.
func (c *LRUCache[K]) Size() int64 {
	return c.size
}

func (c *LRUCache[K]) Capacity() int64 {
	return c.capacity
}

// Keys returns keys ordered from most to least recently used.
func (c *LRUCache[K]) Keys() []K {
	keys := make([]K, 0, c.eviction.Len())
	for elem := c.eviction.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*lruEntry[K]).key)
	}
	return keys
}

// Clear removes all items from the cache.
// If an evict callback is set, it's called for each item.
func (c *LRUCache[K]) Clear() {
	if c.onEvict != nil {
		for elem := c.eviction.Back(); elem != nil; elem = elem.Prev() {
			entry := elem.Value.(*lruEntry[K])
			c.onEvict(entry.key, entry.value)
		}
	}

	c.items = make(map[K]*list.Element)
	c.eviction.Init()
	c.size = 0
}

func (c *LRUCache[K]) evictOldest() {
	elem := c.eviction.Back()
	if elem == nil {
		return
	}
	c.unlink(elem)
	if c.onEvict != nil {
		entry := elem.Value.(*lruEntry[K])
		c.onEvict(entry.key, entry.value)
	}
}

func (c *LRUCache[K]) unlink(elem *list.Element) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*lruEntry[K])
	delete(c.items, entry.key)
	c.size -= int64(len(entry.value))
}
