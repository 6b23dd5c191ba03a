package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// memoryFrontTTL bounds how long the in-process tier trusts an entry.
const memoryFrontTTL = 10 * time.Minute

// Open returns a cache for rawURL fronted by an in-process LRU tier.
//
//   - "" or "file": [FileCache] in fileDir
//   - "none": [NullCache]
//   - "redis://..." or "rediss://...": [RedisCache]
//   - "mongodb://..." or "mongodb+srv://...": [MongoCache]
func Open(ctx context.Context, rawURL, fileDir string) (Cache, error) {
	back, err := openBackend(ctx, rawURL, fileDir)
	if err != nil {
		return nil, err
	}
	front, err := NewMemoryCache(DefaultMemorySize)
	if err != nil {
		back.Close()
		return nil, err
	}
	return NewTieredCache(front, back, memoryFrontTTL), nil
}

func openBackend(ctx context.Context, rawURL, fileDir string) (Cache, error) {
	switch {
	case rawURL == "" || rawURL == "file":
		return NewFileCache(fileDir)
	case rawURL == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		return NewRedisCache(rawURL)
	case strings.HasPrefix(rawURL, "mongodb://"), strings.HasPrefix(rawURL, "mongodb+srv://"):
		return NewMongoCache(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported cache url: %q", rawURL)
	}
}

// NullCache is the "none" backend selected by --no-cache: registry lookups
// and tag lists are fetched on every install.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
