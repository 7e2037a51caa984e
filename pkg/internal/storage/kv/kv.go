// Package kv provides the key-value store used for caching catalog and
// listing data. Backends: in-process memory (default) and Redis.
package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/teczamora/repositorio65/pkg/configs"
)

type Client struct {
	KVStore
}

// KVStore is the key-value store interface.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}

// KVType is a key-value backend identifier.
type KVType string

const (
	KVTypeMemory KVType = "memory"
	KVTypeRedis  KVType = "redis"
)

// KVFactory creates a KVStore from a backend-specific config.
type KVFactory func(ctx context.Context, config any) (KVStore, error)

var kvFactories = make(map[KVType]KVFactory)

// RegisterKVFactory registers a KV backend factory.
func RegisterKVFactory(kvType KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes returns the registered backend types.
func GetRegisteredKVTypes() []KVType {
	types := make([]KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	return types
}

// NewKVStore creates a store of the given type.
func NewKVStore(ctx context.Context, kvType KVType, config any) (KVStore, error) {
	factory, ok := kvFactories[kvType]
	if !ok {
		return nil, fmt.Errorf("unsupported kv type: %s", kvType)
	}

	return factory(ctx, config)
}

// New creates the configured KV client.
func New(ctx context.Context, cfg *configs.KVConfig) (*Client, error) {
	var (
		store KVStore
		err   error
	)

	switch KVType(cfg.Type) {
	case KVTypeRedis:
		store, err = NewKVStore(ctx, KVTypeRedis, &cfg.Redis)
	case KVTypeMemory, "":
		store, err = NewKVStore(ctx, KVTypeMemory, nil)
	default:
		return nil, fmt.Errorf("unsupported kv type: %s", cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	return &Client{KVStore: store}, nil
}
