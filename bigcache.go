// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

// bigCacheNoLifeWindow is used as life window when none is configured,
// long enough for entries to never get evicted by age.
const bigCacheNoLifeWindow = 100 * 365 * 24 * time.Hour

// BigCacheConfig holds the BigCache storage settings.
type BigCacheConfig struct {
	// LifeWindow is the time after which an entry can be evicted.
	// BigCache has no per entry expiration; 0 means entries are never evicted by age.
	LifeWindow time.Duration
	// CleanWindow is the interval between removals of expired entries.
	// It's ignored if LifeWindow is 0.
	CleanWindow time.Duration
	// HardMaxCacheSizeMB is the cache size limit, in MB. 0 means unlimited.
	HardMaxCacheSizeMB int
	// Shards is the number of shards, must be a power of two. Defaults to 1024.
	Shards int
	// MaxEntriesInWindow and MaxEntrySize (bytes) are used only to preallocate memory.
	// Their product is the initial memory size, keep them small for small caches.
	MaxEntriesInWindow int
	MaxEntrySize       int
}

// BigCache is an in memory, GC friendly, implementation for Storage.
// It relies upon BigCache package.
// It implements io.Closer, and thus it should be closed at your application shutdown.
type BigCache struct {
	client *bigcache.BigCache
}

// NewBigCache instantiates a new BigCache storage.
func NewBigCache(config BigCacheConfig) (*BigCache, error) {
	conf := bigcache.DefaultConfig(config.LifeWindow)
	conf.Verbose = false
	if config.LifeWindow <= 0 {
		conf.LifeWindow = bigCacheNoLifeWindow
		conf.CleanWindow = 0
	} else if config.CleanWindow > 0 {
		conf.CleanWindow = config.CleanWindow
	}
	if config.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = config.HardMaxCacheSizeMB
	}
	if config.Shards > 0 {
		conf.Shards = config.Shards
	}
	if config.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = config.MaxEntriesInWindow
	}
	if config.MaxEntrySize > 0 {
		conf.MaxEntrySize = config.MaxEntrySize
	}

	client, err := bigcache.NewBigCache(conf)
	if err != nil {
		return nil, err
	}

	return &BigCache{client: client}, nil
}

// Save stores the given key-value.
func (storage *BigCache) Save(_ context.Context, key string, value []byte) error {
	return storage.client.Set(key, value)
}

// Load returns a key's value.
// If the key is not found, ErrNotFound is returned.
func (storage *BigCache) Load(_ context.Context, key string) ([]byte, error) {
	value, err := storage.client.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, ErrNotFound
	}

	return value, err
}

// Delete removes a key.
func (storage *BigCache) Delete(_ context.Context, key string) error {
	err := storage.client.Delete(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}

	return err
}

// Close closes the underlying BigCache.
func (storage *BigCache) Close() error {
	return storage.client.Close()
}
