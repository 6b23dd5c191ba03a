package cache

import (
	"context"
	"errors"
	"time"
)

// TieredCache checks a fast front cache before a slower back cache.
// Back-tier hits are copied into the front with frontTTL.
type TieredCache struct {
	front    Cache
	back     Cache
	frontTTL time.Duration
}

// NewTieredCache layers front over back.
func NewTieredCache(front, back Cache, frontTTL time.Duration) Cache {
	return &TieredCache{front: front, back: back, frontTTL: frontTTL}
}

// Get retrieves a value, consulting the back tier on a front miss.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.front.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := c.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.front.Set(ctx, key, data, c.frontTTL)
	return data, true, nil
}

// Set writes to both tiers.
func (c *TieredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	frontTTL := c.frontTTL
	if ttl > 0 && ttl < frontTTL {
		frontTTL = ttl
	}
	_ = c.front.Set(ctx, key, data, frontTTL)
	return c.back.Set(ctx, key, data, ttl)
}

// Delete removes key from both tiers.
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	return errors.Join(c.front.Delete(ctx, key), c.back.Delete(ctx, key))
}

// Close closes both tiers.
func (c *TieredCache) Close() error {
	return errors.Join(c.front.Close(), c.back.Close())
}

var _ Cache = (*TieredCache)(nil)
