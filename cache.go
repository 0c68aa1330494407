// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"sync/atomic"

	"github.com/actforgood/xerr"
	"github.com/actforgood/xlog"
)

// Cache holds the active Adapter loaders and binders work with,
// together with some defaults and statistics.
// A process-wide instance is available through DefaultCache.
type Cache struct {
	adapter    atomic.Pointer[adapterRef]
	mode       atomic.Pointer[Mode]
	serverSide atomic.Bool
	logger     xlog.Logger
	stats      statsCounters
}

// adapterRef wraps an Adapter, so it can be swapped atomically.
type adapterRef struct {
	Adapter
}

// CacheOption defines optional function for configuring a Cache.
type CacheOption func(*Cache)

// CacheWithAdapter sets the initial adapter.
// By default, a new MemoryAdapter is used.
func CacheWithAdapter(adapter Adapter) CacheOption {
	return func(cache *Cache) {
		if adapter != nil {
			cache.adapter.Store(&adapterRef{adapter})
		}
	}
}

// CacheWithLogger sets the logger adapter failures are reported to.
// By default, nothing is logged.
func CacheWithLogger(logger xlog.Logger) CacheOption {
	return func(cache *Cache) {
		if logger != nil {
			cache.logger = logger
		}
	}
}

// CacheWithMode sets the mode used by loaders which do not specify one.
// By default, ModeSWR is used.
func CacheWithMode(mode Mode) CacheOption {
	return func(cache *Cache) {
		cache.setMode(mode)
	}
}

// CacheWithServerSide marks the cache as living in a non-interactive
// (server rendering) execution context.
// Configure and CreateAdapter are no-ops for such a cache,
// the configuration factory is not even called.
func CacheWithServerSide() CacheOption {
	return func(cache *Cache) {
		cache.serverSide.Store(true)
	}
}

// NewCache instantiates a new Cache.
func NewCache(opts ...CacheOption) *Cache {
	cache := &Cache{
		logger: xlog.NopLogger{},
	}
	cache.setMode(ModeSWR)
	for _, opt := range opts {
		opt(cache)
	}
	if cache.adapter.Load() == nil {
		cache.adapter.Store(&adapterRef{NewMemoryAdapter()})
	}

	return cache
}

var defaultCache = NewCache()

// DefaultCache returns the process-wide Cache,
// used by loaders and binders which were not given another one.
func DefaultCache() *Cache {
	return defaultCache
}

// Adapter returns the active adapter.
func (cache *Cache) Adapter() Adapter {
	return cache.adapter.Load().Adapter
}

// Mode returns the default loader mode.
func (cache *Cache) Mode() Mode {
	return *cache.mode.Load()
}

// IsServerSide returns true if the cache was marked as living
// in a non-interactive execution context.
func (cache *Cache) IsServerSide() bool {
	return cache.serverSide.Load()
}

// Configure swaps the active adapter with the one produced by factory.
// The factory is not called on a server side cache.
// A zero Choice leaves the active adapter untouched.
// It returns true if the adapter was swapped.
//
// Operations which already got hold of the previous adapter finish against it.
func (cache *Cache) Configure(factory func() Choice) bool {
	adapter, ok := cache.CreateAdapter(factory)
	if !ok {
		return false
	}
	cache.adapter.Store(&adapterRef{adapter})
	cache.logger.Debug(xlog.MessageKey, "cache adapter configured")

	return true
}

// CreateAdapter normalizes the Choice produced by factory into an Adapter,
// without making it the active one. Useful to pin an adapter per loader.
// On a server side cache, the factory is not called and false is returned.
func (cache *Cache) CreateAdapter(factory func() Choice) (Adapter, bool) {
	if cache.IsServerSide() || factory == nil {
		return nil, false
	}

	return NewAdapter(factory())
}

// Invalidate removes given keys from the active adapter.
// All keys are tried, the returned error aggregates all failures.
func (cache *Cache) Invalidate(ctx context.Context, keys ...string) error {
	return cache.invalidate(ctx, cache.Adapter(), keys...)
}

func (cache *Cache) invalidate(ctx context.Context, adapter Adapter, keys ...string) error {
	var mErr *xerr.MultiError
	for _, key := range keys {
		if err := adapter.Remove(ctx, key); err != nil {
			cache.reportAdapterError("remove", key, err)
			mErr = mErr.Add(err)

			continue
		}
		cache.stats.invalidations.Add(1)
	}

	return mErr.ErrOrNil()
}

// Stats returns a snapshot of cache statistics.
func (cache *Cache) Stats() Stats {
	return cache.stats.snapshot()
}

func (cache *Cache) setMode(mode Mode) {
	mode = parseMode(string(mode))
	cache.mode.Store(&mode)
}

// reportAdapterError logs and counts an adapter failure which is not propagated.
func (cache *Cache) reportAdapterError(op, key string, err error) {
	cache.stats.adapterErrors.Add(1)
	cache.logger.Error(
		xlog.MessageKey, "cache adapter operation failed",
		"op", op,
		"key", key,
		"err", err.Error(),
	)
}

// ConfigureGlobalCache swaps the adapter of the process-wide Cache.
// See Cache.Configure.
func ConfigureGlobalCache(factory func() Choice) bool {
	return defaultCache.Configure(factory)
}

// InvalidateCache removes given keys from the process-wide Cache.
// See Cache.Invalidate.
func InvalidateCache(ctx context.Context, keys ...string) error {
	return defaultCache.Invalidate(ctx, keys...)
}
