package cache

import (
	"sync"
)

// Cache is a mutex-guarded map used as the in-process job registry. Writes are
// serialized; reads take a shared lock so pollers never observe a torn map.
type Cache[T interface{}] struct {
	cache map[string]T
	mutex sync.RWMutex
}

func New[T interface{}]() *Cache[T] {
	return &Cache[T]{
		cache: make(map[string]T),
	}
}

func (c *Cache[T]) Remove(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.cache, id)
}

func (c *Cache[T]) Get(id string) T {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	info, ok := c.cache[id]
	if ok {
		return info
	}
	var zero T
	return zero
}

func (c *Cache[T]) GetKeys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	keys := make([]string, 0, len(c.cache))
	for k := range c.cache {
		keys = append(keys, k)
	}
	return keys
}

func (c *Cache[T]) GetAll() []T {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	values := make([]T, 0, len(c.cache))
	for _, v := range c.cache {
		values = append(values, v)
	}
	return values
}

func (c *Cache[T]) Store(id string, value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache[id] = value
}
