package cache

import (
	"sync"
	"time"

	"github.com/bornholm/saskatoon/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cacheable values are reachable through each of their keys.
type Cacheable interface {
	CacheKeys() []string
}

// MultiIndexCache is an expiring LRU cache where a value is stored under
// all its keys, removing it through one key removing it from every index.
type MultiIndexCache[V Cacheable] struct {
	name  string
	cache *expirable.LRU[string, V]
	mu    sync.RWMutex
}

func NewMultiIndexCache[V Cacheable](name string, size int, ttl time.Duration) *MultiIndexCache[V] {
	return &MultiIndexCache[V]{
		name:  name,
		cache: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

func (c *MultiIndexCache[V]) Add(item V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range item.CacheKeys() {
		c.cache.Add(key, item)
	}
}

func (c *MultiIndexCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	item, exists := c.cache.Get(key)
	c.mu.RUnlock()

	result := metrics.ResultMiss
	if exists {
		result = metrics.ResultHit
	}

	metrics.CacheLookups.With(map[string]string{
		metrics.LabelCache:  c.name,
		metrics.LabelResult: result,
	}).Inc()

	return item, exists
}

func (c *MultiIndexCache[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.cache.Peek(key)
	if !exists {
		return
	}

	for _, k := range item.CacheKeys() {
		c.cache.Remove(k)
	}
}

// Purge removes every value.
func (c *MultiIndexCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

func (c *MultiIndexCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cache.Len()
}
