// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/actforgood/xlog"
)

// Mode tells a loader what to do with a cached entry.
type Mode string

const (
	// ModeSWR serves the cached entry and revalidates it in background.
	ModeSWR Mode = "swr"
	// ModeNormal serves the cached entry and does not fetch at all.
	ModeNormal Mode = "normal"
)

// parseMode returns ModeNormal for "normal", and ModeSWR for anything else.
func parseMode(mode string) Mode {
	if Mode(mode) == ModeNormal {
		return ModeNormal
	}

	return ModeSWR
}

var (
	// ErrNoKey is returned by loaders when neither an explicit key,
	// nor a request to derive the key from, were provided.
	ErrNoKey = errors.New("no cache key could be resolved")
	// ErrNoLoader is returned by loaders when the server loader / action function is missing.
	ErrNoLoader = errors.New("no server loader provided")
)

// LoaderFunc produces the authoritative data for the current navigation.
type LoaderFunc[T any] func(ctx context.Context) (T, error)

// LoaderArgs holds the host's per navigation input of CacheClientLoader.
type LoaderArgs[T any] struct {
	// Request is the navigation's request, its URL is used to derive the cache key.
	Request *http.Request
	// ServerLoader fetches fresh data.
	ServerLoader LoaderFunc[T]
}

// ActionArgs holds the host's per mutation input of DecacheClientAction.
type ActionArgs[T any] struct {
	// Request is the mutation's request, its URL is used to derive the cache key.
	Request *http.Request
	// ServerAction performs the mutation.
	ServerAction LoaderFunc[T]
}

// Envelope is the outcome of a navigation's loader.
type Envelope[T any] struct {
	// Data is the data to be rendered right away.
	Data T
	// Deferred is the background fetch revalidating Data, if any.
	Deferred *Pending[T]
	// Key is the cache key Data is stored under.
	Key string
}

type loaderConfig struct {
	mode    Mode
	key     string
	adapter Adapter
	cache   *Cache
}

// LoaderOption defines optional function for configuring a loader / action call.
type LoaderOption func(*loaderConfig)

// LoaderWithMode sets the loader mode. By default, the Cache's mode is used.
func LoaderWithMode(mode Mode) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.mode = parseMode(string(mode))
	}
}

// LoaderWithKey sets an explicit cache key, instead of the one derived from request.
func LoaderWithKey(key string) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.key = key
	}
}

// LoaderWithAdapter pins the adapter to work with.
// By default, the Cache's active adapter is used.
func LoaderWithAdapter(adapter Adapter) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.adapter = adapter
	}
}

// LoaderWithCache sets the Cache to work with. By default, DefaultCache is used.
func LoaderWithCache(cache *Cache) LoaderOption {
	return func(cfg *loaderConfig) {
		if cache != nil {
			cfg.cache = cache
		}
	}
}

func newLoaderConfig(r *http.Request, opts []LoaderOption) (loaderConfig, error) {
	cfg := loaderConfig{cache: defaultCache}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.mode == "" {
		cfg.mode = cfg.cache.Mode()
	}
	if cfg.adapter == nil {
		cfg.adapter = cfg.cache.Adapter()
	}
	if cfg.key == "" {
		cfg.key = RequestKey(r)
		if cfg.key == "" {
			return cfg, ErrNoKey
		}
	}

	return cfg, nil
}

// CacheClientLoader serves a navigation's data from cache, fetching it with
// the server loader when needed:
//
//   - in ModeNormal, a cached entry is returned as it is, no fetch happens;
//   - in ModeSWR, a cached entry is returned and a background fetch is started,
//     its handle being returned as Envelope.Deferred;
//   - without a cached entry, the server loader is awaited and its result returned
//     (its error too, if it fails).
//
// The returned data is stored under the key before returning.
// Adapter failures are logged and counted, never returned; a failed read counts as a miss.
func CacheClientLoader[T any](ctx context.Context, args LoaderArgs[T], opts ...LoaderOption) (Envelope[T], error) {
	cfg, err := newLoaderConfig(args.Request, opts)
	if err != nil {
		return Envelope[T]{}, err
	}
	if args.ServerLoader == nil {
		return Envelope[T]{Key: cfg.key}, ErrNoLoader
	}

	cached, found := lookup[T](ctx, cfg)
	if found && cfg.mode == ModeNormal {
		return Envelope[T]{Data: cached, Key: cfg.key}, nil
	}

	data := cached
	if !found {
		if data, err = args.ServerLoader(ctx); err != nil {
			return Envelope[T]{Key: cfg.key}, err
		}
	}

	store(ctx, cfg, data)

	env := Envelope[T]{Data: data, Key: cfg.key}
	if found {
		env.Deferred = NewPending(context.WithoutCancel(ctx), args.ServerLoader)
		cfg.cache.stats.revalidations.Add(1)
	}

	return env, nil
}

// DecacheClientAction performs the server action, and then removes the cache
// entry for the resolved key, whatever the action's outcome was.
// The action's result and error are returned untouched.
func DecacheClientAction[T any](ctx context.Context, args ActionArgs[T], opts ...LoaderOption) (T, error) {
	var zero T
	cfg, err := newLoaderConfig(args.Request, opts)
	if err != nil {
		return zero, err
	}
	if args.ServerAction == nil {
		return zero, ErrNoLoader
	}

	result, err := args.ServerAction(ctx)
	_ = cfg.cache.invalidate(ctx, cfg.adapter, cfg.key)

	return result, err
}

// lookup returns the cached entry for cfg.key, converted to T.
func lookup[T any](ctx context.Context, cfg loaderConfig) (T, bool) {
	var zero T
	value, found, err := cfg.adapter.Get(ctx, cfg.key)
	if err != nil {
		cfg.cache.reportAdapterError("get", cfg.key, err)
	}
	if err != nil || !found {
		cfg.cache.stats.misses.Add(1)

		return zero, false
	}

	data, ok := convertValue[T](value)
	if !ok {
		cfg.cache.stats.misses.Add(1)
		cfg.cache.logger.Debug(
			xlog.MessageKey, "cached entry has unexpected shape, ignoring it",
			"key", cfg.key,
		)

		return zero, false
	}
	cfg.cache.stats.hits.Add(1)

	return data, true
}

func store[T any](ctx context.Context, cfg loaderConfig, data T) {
	if err := cfg.adapter.Set(ctx, cfg.key, data); err != nil {
		cfg.cache.reportAdapterError("set", cfg.key, err)

		return
	}
	cfg.cache.stats.stores.Add(1)
}

// convertValue returns value as a T.
// Adapters which serialize data give back generic shapes (maps, slices, float64...),
// those are converted to T through JSON.
func convertValue[T any](value any) (T, bool) {
	if data, ok := value.(T); ok {
		return data, true
	}

	var data T
	if value == nil {
		return data, false
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return data, false
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, false
	}

	return data, true
}
