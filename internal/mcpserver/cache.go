package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// lruCache is a size-bounded least-recently-used cache whose entries also
// expire after a per-entry TTL. The zero value is not usable; use newLRUCache.
type lruCache[V any] struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	items   map[string]*list.Element
	maxSize int

	hits, misses, evictions atomic.Int64
	sweeperStarted          atomic.Bool
}

type lruItem[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func newLRUCache[V any](maxSize int) *lruCache[V] {
	return &lruCache[V]{
		order:   list.New(),
		items:   make(map[string]*list.Element),
		maxSize: max(maxSize, 1),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	item := el.Value.(*lruItem[V])
	if time.Now().After(item.expiresAt) {
		c.removeElement(el)
		c.misses.Add(1)
		return zero, false
	}
	c.order.MoveToFront(el)
	c.hits.Add(1)
	return item.value, true
}

// put stores value under key for ttl, replacing any previous entry and
// evicting the least recently used entry when the cache is full.
func (c *lruCache[V]) put(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &lruItem[V]{key: key, value: value, expiresAt: time.Now().Add(ttl)}
	if el, ok := c.items[key]; ok {
		el.Value = item
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.maxSize {
		c.removeElement(c.order.Back())
		c.evictions.Add(1)
	}
	c.items[key] = c.order.PushFront(item)
}

// sweep removes expired entries and returns how many were removed.
func (c *lruCache[V]) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*lruItem[V]).expiresAt) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

// startSweeper runs sweep every interval until ctx is cancelled. Only the
// first of concurrent calls starts a goroutine.
func (c *lruCache[V]) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *lruCache[V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*lruItem[V]).key)
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// reset drops every entry and zeroes the counters.
func (c *lruCache[V]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// cacheStats is a snapshot of an lruCache's counters.
type cacheStats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

func (c *lruCache[V]) stats() cacheStats {
	return cacheStats{
		Entries:   c.len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
