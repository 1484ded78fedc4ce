package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache is a size-bounded cache with per-item TTL. Lookups promote the
// item to most-recently-used; inserting past capacity evicts from the cold
// end. The zero value is not usable, construct with NewLRUCache.
type LRUCache[T any] struct {
	mu      sync.Mutex
	cap     int
	ttl     time.Duration
	index   map[string]*list.Element
	order   *list.List // front = most recently used
}

type cacheItem[T any] struct {
	key      string
	data     T
	deadline time.Time
}

func (it *cacheItem[T]) expired(now time.Time) bool {
	return now.After(it.deadline)
}

func NewLRUCache[T any](capacity int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		cap:   capacity,
		ttl:   ttl,
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Get returns the cached value for key. Expired items count as misses and
// are dropped on the spot.
func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.index[key]
	if !ok {
		return zero, false
	}
	it := elem.Value.(*cacheItem[T])
	if it.expired(time.Now()) {
		c.drop(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return it.data, true
}

// Set stores data under key, resetting its TTL. Overwriting an existing key
// promotes it; a fresh insert past capacity evicts the least recently used
// item.
func (c *LRUCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := &cacheItem[T]{key: key, data: data, deadline: time.Now().Add(c.ttl)}

	if elem, ok := c.index[key]; ok {
		elem.Value = it
		c.order.MoveToFront(elem)
		return
	}

	c.index[key] = c.order.PushFront(it)
	if c.order.Len() > c.cap {
		if coldest := c.order.Back(); coldest != nil {
			c.drop(coldest)
		}
	}
}

// Delete removes key if present.
func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.index[key]; ok {
		c.drop(elem)
	}
}

// Purge empties the cache. Entry mutations call this so no report payload
// outlives the collection state it was computed from.
func (c *LRUCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[string]*list.Element)
	c.order.Init()
}

// CleanExpired drops every item past its deadline and reports how many.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	var next *list.Element
	for elem := c.order.Front(); elem != nil; elem = next {
		next = elem.Next()
		if elem.Value.(*cacheItem[T]).expired(now) {
			c.drop(elem)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached items, expired or not.
func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

func (c *LRUCache[T]) drop(elem *list.Element) {
	delete(c.index, elem.Value.(*cacheItem[T]).key)
	c.order.Remove(elem)
}
