// Package cache provides a byte-bounded LRU (Least Recently Used) cache for
// holding raw response bodies in memory.
//
// The capacity is expressed in bytes: the sum of the lengths of all stored
// values never exceeds it. When a Put would overflow, the least recently used
// entries are evicted one at a time until the new value fits. A value that is
// larger than the whole capacity is rejected with ErrCapacityExceeded and
// nothing is stored under its key.
//
// # Usage
//
//	c := cache.NewLRUCache[string](10 << 20) // 10 MiB
//
//	if err := c.Put("https://example.com/", body); err != nil {
//		// errors.Is(err, cache.ErrCapacityExceeded)
//	}
//
//	body, found := c.Get("https://example.com/") // marks as recently used
//
// Items are considered "recently used" when they are retrieved with Get or
// added or updated with Put. Peek reads a value without changing its position.
//
// # Eviction Callbacks
//
// SetEvictCallback registers a function invoked for every entry dropped to
// make room and for every entry dropped by Clear:
//
//	c.SetEvictCallback(func(key string, value []byte) {
//		evictions++
//	})
//
// # Thread Safety
//
// The cache carries no lock of its own. It is meant to live inside a larger
// structure whose mutex already serializes every access, so an inner lock
// would only add cost.
//
// # Performance Characteristics
//
//   - Get, Peek, Put, Remove: O(1) average case, plus O(k) for k evictions
//   - Keys: O(n)
package cache
