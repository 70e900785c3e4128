// Package cache provides the key/value stores used to front the claim
// repository. Values are JSON encoded so every driver returns copies.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

// Store is a JSON value cache.
type Store interface {
	// Get decodes the value at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Config selects a driver.
type Config struct {
	Driver string // "redis" or "memory"
	TTL    time.Duration
	Redis  RedisConfig
}

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// New builds the store named by cfg.Driver.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverRedis, "":
		return NewRedisStore(NewRedisClient(&cfg.Redis), cfg.TTL), nil
	case DriverMemory:
		return NewMemoryStore(cfg.TTL, 2*cfg.TTL), nil
	default:
		return nil, eris.Errorf("cache: unknown driver %q", cfg.Driver)
	}
}

type EntityType string

const (
	EntityClaim EntityType = "claim"
	EntityStats EntityType = "stats"
)

type KeyType string

const (
	KeyID      KeyType = "id"
	KeySummary KeyType = "summary"
)

// GenerateKey creates a standardized cache key.
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// ClaimKey is the cache key of a single claim.
func ClaimKey(id string) string {
	return GenerateKey(EntityClaim, KeyID, id)
}

// SummaryKey is the cache key of the reviewer statistics.
func SummaryKey() string {
	return GenerateKey(EntityStats, KeySummary, "all")
}
