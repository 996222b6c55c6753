package hdns

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// idCache memoizes zone name to ID lookups so repeated IDByName calls skip
// the listing round trip. Entries are evicted LRU-style and dropped when this
// client creates or deletes a zone; changes made through other clients stay
// invisible until eviction.
type idCache struct {
	lru *lru.Cache[string, string]
}

// newIDCache returns an idCache holding at most size entries.
func newIDCache(size int) (*idCache, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &idCache{lru: cache}, nil
}

func (c *idCache) get(name string) (string, bool) {
	return c.lru.Get(name)
}

func (c *idCache) put(name, id string) {
	c.lru.Add(name, id)
}

func (c *idCache) removeName(name string) {
	c.lru.Remove(name)
}

// removeID drops every entry pointing at id. Zone deletion addresses zones
// by ID, so the reverse walk is what keeps the memo honest.
func (c *idCache) removeID(id string) {
	for _, name := range c.lru.Keys() {
		if v, ok := c.lru.Peek(name); ok && v == id {
			c.lru.Remove(name)
		}
	}
}

func (c *idCache) len() int {
	return c.lru.Len()
}
