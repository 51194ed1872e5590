package search

import (
	"container/list"
	"sync"
	"time"

	"github.com/promptdeck/promptsearch/internal/models"
)

// resultCache is an LRU cache of ranked result lists keyed by the exact
// normalized query (plus limit), with TTL expiry and in-flight
// de-duplication: concurrent lookups for the same key share one computation.
// Because entries are keyed by the exact query string, a slow completion can
// only ever fill its own key; it can never overwrite the entry for a
// different, newer query.
type resultCache struct {
	capacity int
	ttl      time.Duration

	mu       sync.Mutex
	entries  map[string]*list.Element
	lru      *list.List
	inflight map[string]*inflightCall
}

type cacheEntry struct {
	key      string
	value    []models.PromptDocument
	storedAt time.Time
}

type inflightCall struct {
	done  chan struct{}
	value []models.PromptDocument
	err   error
}

// newResultCache creates a cache with the given capacity and TTL.
func newResultCache(capacity int, ttl time.Duration) *resultCache {
	return &resultCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		inflight: make(map[string]*inflightCall),
	}
}

// Do returns the cached value for key if fresh; otherwise it runs fn exactly
// once for all concurrent callers of the same key and caches a successful
// result. Errors are returned to every waiter and not cached.
func (c *resultCache) Do(key string, fn func() ([]models.PromptDocument, error)) ([]models.PromptDocument, error) {
	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		if time.Since(entry.storedAt) < c.ttl {
			c.lru.MoveToFront(elem)
			c.mu.Unlock()
			return entry.value, nil
		}
		c.lru.Remove(elem)
		delete(c.entries, key)
	}
	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-call.done
		return call.value, call.err
	}
	call := &inflightCall{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	call.value, call.err = fn()

	c.mu.Lock()
	delete(c.inflight, key)
	if call.err == nil {
		c.put(key, call.value)
	}
	c.mu.Unlock()
	close(call.done)

	return call.value, call.err
}

// put stores value under key, evicting the oldest entry if at capacity.
// Caller must hold c.mu.
func (c *resultCache) put(key string, value []models.PromptDocument) {
	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.value = value
		entry.storedAt = time.Now()
		return
	}

	entry := &cacheEntry{key: key, value: value, storedAt: time.Now()}
	elem := c.lru.PushFront(entry)
	c.entries[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
}
