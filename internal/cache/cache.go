// Package cache provides a small generic LRU cache with a soft limit.
//
// It backs the font file cache: parsing a font collection is expensive,
// and several faces of one file are usually loaded together.
//
//	c := cache.New[string, []byte](16)
//	c.Set("a.ttf", data)
//	data, ok := c.Get("a.ttf")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

import "sync"

// Cache is a thread-safe LRU cache with a soft limit.
// When the number of entries exceeds the limit, the least recently used
// quarter of the entries is evicted.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*node[K, V]
	order     list[K, V]
	softLimit int
	onEvict   func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache with the given soft limit. A limit of 0 means
// unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*node[K, V]),
		softLimit: softLimit,
	}
}

// OnEvict registers fn to be called for every entry removed by eviction,
// Delete or Clear. fn runs with the cache lock held and must not call back
// into the cache.
func (c *Cache[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get returns the value stored under key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores value under key, replacing any previous value.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// GetOrCreate returns the cached value for key, or calls create and stores
// its result. create runs under the cache lock, so concurrent callers never
// create the same key twice. If create fails nothing is stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(n)
		return n.value, nil
	}
	c.misses++
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.setLocked(key, v)
	return v, nil
}

// Delete removes key from the cache and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(n)
	return true
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for n := c.order.tail; n != nil; {
		prev := n.prev
		c.removeLocked(n)
		n = prev
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

func (c *Cache[K, V]) setLocked(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.order.pushFront(n)

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictLocked()
	}
}

// evictLocked trims the cache to three quarters of the soft limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictLocked() {
	target := c.softLimit * 3 / 4
	if target < 1 {
		target = 1
	}
	for len(c.entries) > target && c.order.tail != nil {
		c.removeLocked(c.order.tail)
		c.evictions++
	}
}

func (c *Cache[K, V]) removeLocked(n *node[K, V]) {
	c.order.unlink(n)
	delete(c.entries, n.key)
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
}

// node is an entry in the recency list. head is the most recently used.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

type list[K comparable, V any] struct {
	head, tail *node[K, V]
}

func (l *list[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

func (l *list[K, V]) moveToFront(n *node[K, V]) {
	if l.head == n {
		return
	}
	l.unlink(n)
	l.pushFront(n)
}

func (l *list[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
