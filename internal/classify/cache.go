package classify

import (
	"container/list"
	"sync"
)

// cacheKey identifies one classification run. The modification marker is the
// sole invalidation mechanism: a changed file produces a new key and the old
// entry ages out of the LRU.
type cacheKey struct {
	path      string
	modTime   int64
	sample    int
	threshold float64
}

type cacheEntry struct {
	key cacheKey
	val Classification
}

// resultCache is a small bounded LRU. Orchestration is sequential, but the
// lock keeps the structure safe if a caller ever classifies concurrently.
type resultCache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	items map[cacheKey]*list.Element
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[cacheKey]*list.Element, capacity),
	}
}

func (c *resultCache) get(key cacheKey) (Classification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return Classification{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).val, true
}

func (c *resultCache) put(key cacheKey, val Classification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*cacheEntry).val = val
		return
	}
	el := c.ll.PushFront(&cacheEntry{key: key, val: val})
	c.items[key] = el
	for c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
