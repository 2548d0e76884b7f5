package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is a read-through Redis cache for upstream listing responses.
// A nil client disables caching; every lookup is then a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewCache creates a listing cache. client may be nil.
func NewCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns a cached payload, or false on miss or error
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// Set stores a payload. Errors are logged, never surfaced; a broken
// cache degrades to uncached reads.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}
