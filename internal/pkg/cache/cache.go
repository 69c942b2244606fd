// Package cache is a TTL cache used for verification lookups. Rendered
// documents are never cached: each render call is a self-contained
// computation.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/metrics"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/tracing"
)

// Item is a cache entry with an expiration time
type Item struct {
	Value      []byte
	Expiration int64
}

// Cache is a TTL cache
type Cache struct {
	items sync.Map
	ttl   time.Duration
}

// NewCache creates a cache whose entries live for ttl
func NewCache(ttl time.Duration) *Cache {
	cache := &Cache{
		ttl: ttl,
	}
	go cache.startCleanupTimer()
	return cache
}

// Set stores a value
func (c *Cache) Set(key string, value []byte) {
	c.items.Store(key, Item{
		Value:      value,
		Expiration: time.Now().Add(c.ttl).UnixNano(),
	})
}

// Get retrieves a value
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Cache.Get")
	defer span.End()

	span.SetAttributes(attribute.String("cache.key", key))

	item, exists := c.items.Load(key)
	if !exists {
		metrics.CacheMisses.Inc()
		err := fmt.Errorf("cache miss: key %s not found", key)
		tracing.RecordError(ctx, err)
		return nil, err
	}

	cacheItem := item.(Item)
	if time.Now().UnixNano() > cacheItem.Expiration {
		c.items.Delete(key)
		metrics.CacheMisses.Inc()
		err := fmt.Errorf("cache miss: key %s expired", key)
		tracing.RecordError(ctx, err)
		return nil, err
	}

	metrics.CacheHits.Inc()
	span.AddEvent("Cache hit")
	return cacheItem.Value, nil
}

// Delete removes a value
func (c *Cache) Delete(ctx context.Context, key string) {
	_, span := tracing.StartSpan(ctx, "Cache.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("cache.key", key))
	c.items.Delete(key)
	span.AddEvent("Cache entry deleted")
}

// startCleanupTimer periodically evicts expired entries
func (c *Cache) startCleanupTimer() {
	ticker := time.NewTicker(c.ttl)
	for range ticker.C {
		now := time.Now().UnixNano()
		c.items.Range(func(key, value interface{}) bool {
			item := value.(Item)
			if now > item.Expiration {
				c.items.Delete(key)
			}
			return true
		})
	}
}
