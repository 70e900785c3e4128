package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
)

// MemoryStore is an in-process Store for single-instance deployments and tests.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryStore creates a new memory cache
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
		ttl:   defaultTTL,
	}
}

func (c *MemoryStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	val, found := c.cache.Get(key)
	if !found {
		return false, nil
	}
	data, ok := val.([]byte)
	if !ok {
		return false, eris.Errorf("cache: unexpected value type %T at %s", val, key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, eris.Wrap(err, "failed to unmarshal cache value")
	}
	return true, nil
}

func (c *MemoryStore) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, c.ttl)
}

func (c *MemoryStore) SetWithTTL(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return eris.Wrap(err, "failed to marshal cache value")
	}
	c.cache.Set(key, data, ttl)
	return nil
}

func (c *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.cache.Delete(key)
	}
	return nil
}

func (c *MemoryStore) Ping(context.Context) error {
	return nil
}

// Close removes all values.
func (c *MemoryStore) Close() error {
	c.cache.Flush()
	return nil
}
