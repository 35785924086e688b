// Package cache is the process-wide TTL cache shared by the schedulers and the admin lookups.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache.go -package=mock_cache

type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

type memoryCache struct {
	items *gocache.Cache
}

func New(cleanupInterval time.Duration) Cache {
	return &memoryCache{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (c *memoryCache) Get(key string) (any, bool) {
	return c.items.Get(key)
}

func (c *memoryCache) Set(key string, value any, ttl time.Duration) {
	c.items.Set(key, value, ttl)
}

func (c *memoryCache) Delete(key string) {
	c.items.Delete(key)
}
