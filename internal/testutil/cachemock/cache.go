package cachemock

import (
	"context"
	"encoding/json"
	"sync"
)

// Cache is a map-backed listing cache for usecase tests. It satisfies both
// usecase ListingCache interfaces and records invalidated keys.
type Cache struct {
	mu          sync.Mutex
	values      map[string][]byte
	Invalidated []string
}

func New() *Cache { return &Cache{values: map[string][]byte{}} }

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	c.mu.Lock()
	b, ok := c.values[key]
	c.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.values[key] = b
	c.mu.Unlock()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.Invalidated = append(c.Invalidated, k)
	}
}

func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}
