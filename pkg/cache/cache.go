// Package cache provides a thread-safe LRU cache for parsed terms.
//
// The cache backs the root package's CachedParser. It avoids re-parsing the
// same source string on every call, which is valuable when the same terms
// are converted repeatedly, e.g. when re-rendering a fixed set of formulas
// into several notations.
//
// # Example
//
//	c := cache.New(1024)
//	term, err := c.GetOrParse(cache.Key{Grammar: "term", Source: "1+2*3"}, parse)
package cache

import (
	"container/list"
	"sync"

	"github.com/sandrolain/gomathml/pkg/types"
)

// Key identifies a cached term. The grammar name is part of the key because
// the same source can parse differently (or fail) under the term and
// boolean grammars.
type Key struct {
	Grammar string
	Source  string
}

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	key  Key
	term *types.Term
}

// Cache is a thread-safe LRU (Least Recently Used) cache for parsed terms.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[Key]*list.Element
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, a default of 256 is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[Key]*list.Element, capacity),
	}
}

// Get retrieves a parsed term from the cache.
// Returns (term, true) if found and moves the entry to front (MRU).
// Returns (nil, false) if not present.
func (c *Cache) Get(key Key) (*types.Term, bool) {
	c.mu.RLock()
	el, ok := c.items[key]
	// If the element is already at the front, skip the write lock entirely.
	alreadyFront := ok && c.ll.Front() == el
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !alreadyFront {
		// Promote to front under write lock; re-check in case of concurrent eviction.
		c.mu.Lock()
		el, ok = c.items[key]
		if ok {
			c.ll.MoveToFront(el)
		}
		c.mu.Unlock()

		if !ok {
			return nil, false
		}
	}
	return el.Value.(*entry).term, true
}

// Set inserts or replaces a term in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache) Set(key Key, term *types.Term) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).term = term
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry{key: key, term: term})
	c.items[key] = el
}

// GetOrParse retrieves the term for key from cache, or calls parse() to
// create it, caches the result, and returns it.
// parse is called at most once per key (no negative caching of errors).
func (c *Cache) GetOrParse(key Key, parse func() (*types.Term, error)) (*types.Term, error) {
	if term, ok := c.Get(key); ok {
		return term, nil
	}
	term, err := parse()
	if err != nil {
		return nil, err
	}
	c.Set(key, term)
	return term, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[Key]*list.Element, c.capacity)
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
