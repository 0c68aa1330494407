// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/actforgood/xlog"
)

// Navigator is the host's client side navigation mechanism.
type Navigator interface {
	// Navigate requests a navigation to given location.
	Navigate(location string)
}

// NavigatorFunc is an adapter to allow the use of ordinary functions as Navigator.
type NavigatorFunc func(location string)

// Navigate calls fn(location).
func (fn NavigatorFunc) Navigate(location string) {
	fn(location)
}

// RedirectError is the failure a loader returns to request a redirect.
// A Binder honors it by navigating to Location.
type RedirectError struct {
	Location string
	Status   int
}

// Error implements error.
func (e *RedirectError) Error() string {
	return "redirect to " + e.Location
}

// Redirect returns a RedirectError for given location, with status 302.
func Redirect(location string) error {
	return &RedirectError{Location: location, Status: http.StatusFound}
}

type binderConfig struct {
	adapter  Adapter
	cache    *Cache
	boundary func(error)
}

// BinderOption defines optional function for configuring a Binder.
type BinderOption func(*binderConfig)

// BinderWithAdapter pins the adapter fresh data is written to.
// By default, the Cache's active adapter is used.
func BinderWithAdapter(adapter Adapter) BinderOption {
	return func(cfg *binderConfig) {
		cfg.adapter = adapter
	}
}

// BinderWithCache sets the Cache to work with. By default, DefaultCache is used.
func BinderWithCache(cache *Cache) BinderOption {
	return func(cfg *binderConfig) {
		if cache != nil {
			cfg.cache = cache
		}
	}
}

// BinderWithErrorBoundary sets the callback a failed background fetch
// (other than a redirect) is handed to.
// Without one, the failure is kept and exposed through Binder.Err.
func BinderWithErrorBoundary(boundary func(error)) BinderOption {
	return func(cfg *binderConfig) {
		cfg.boundary = boundary
	}
}

// Binder keeps the freshest known data of a rendered view.
// The host calls Bind with the current Envelope on every render;
// the Binder watches the Envelope's background fetch and, when it resolves,
// writes the fresh value to the adapter and into its view.
//
// A Binder is safe for concurrent use.
type Binder[T any] struct {
	nav Navigator
	cfg binderConfig

	mu     sync.Mutex
	env    Envelope[T]
	bound  bool
	fresh  T
	err    error
	watch  *watch
	subs   map[uint64]func(T)
	nextID uint64
}

// watch is the subscription to one Envelope's background fetch.
type watch struct {
	detached atomic.Bool
}

// NewBinder instantiates a new Binder.
// nav is used to honor redirects, it can be nil if the host never redirects.
func NewBinder[T any](nav Navigator, opts ...BinderOption) *Binder[T] {
	cfg := binderConfig{cache: defaultCache}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Binder[T]{
		nav:  nav,
		cfg:  cfg,
		subs: make(map[uint64]func(T)),
	}
}

// Bind hands the current navigation's Envelope to the binder.
//
// A new Envelope (different key or background fetch) replaces the watched fetch:
// the previous one is detached and will not update anything anymore.
// If the Envelope's data differs from the current view, the view is updated.
// Data is compared by its JSON serialization, a cost linear in the size of the data.
func (b *Binder[T]) Bind(env Envelope[T]) {
	b.mu.Lock()
	isNew := !b.bound || b.env.Key != env.Key || b.env.Deferred != env.Deferred
	dataChanged := isNew || !deepEqual(b.env.Data, env.Data)
	if !b.bound {
		b.fresh = env.Data
	}
	b.env = env
	b.bound = true

	var w *watch
	if isNew {
		if b.watch != nil {
			b.watch.detached.Store(true)
			b.watch = nil
		}
		b.err = nil
		if env.Deferred != nil {
			w = new(watch)
			b.watch = w
		}
	}

	var subs []func(T)
	if dataChanged && !deepEqual(env.Data, b.fresh) {
		b.fresh = env.Data
		subs = b.subscribers()
	}
	fresh := b.fresh
	b.mu.Unlock()

	for _, fn := range subs {
		fn(fresh)
	}
	if w != nil {
		go b.watchPending(w, env, b.adapter())
	}
}

// watchPending waits for env's background fetch and applies its outcome,
// unless the watch was detached meanwhile.
func (b *Binder[T]) watchPending(w *watch, env Envelope[T], adapter Adapter) {
	value, err := env.Deferred.Result()
	if w.detached.Load() {
		return
	}
	if err != nil {
		b.handleFailure(w, env.Key, err)

		return
	}

	if w.detached.Load() {
		return
	}
	if setErr := adapter.Set(context.Background(), env.Key, value); setErr != nil {
		b.cfg.cache.reportAdapterError("set", env.Key, setErr)
	} else {
		b.cfg.cache.stats.stores.Add(1)
	}

	b.mu.Lock()
	if w.detached.Load() {
		b.mu.Unlock()

		return
	}
	b.fresh = value
	subs := b.subscribers()
	b.mu.Unlock()

	b.cfg.cache.stats.revalidated.Add(1)
	for _, fn := range subs {
		fn(value)
	}
}

func (b *Binder[T]) handleFailure(w *watch, key string, err error) {
	b.cfg.cache.stats.revalidationFailures.Add(1)

	var redirect *RedirectError
	if errors.As(err, &redirect) {
		if b.nav != nil {
			b.nav.Navigate(redirect.Location)
		}

		return
	}

	b.cfg.cache.logger.Error(
		xlog.MessageKey, "background revalidation failed",
		"key", key,
		"err", err.Error(),
	)

	b.mu.Lock()
	if w.detached.Load() {
		b.mu.Unlock()

		return
	}
	b.err = err
	b.mu.Unlock()

	if b.cfg.boundary != nil {
		b.cfg.boundary(err)
	}
}

// Data returns the freshest known data.
func (b *Binder[T]) Data() T {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.fresh
}

// Key returns the cache key of the bound Envelope.
func (b *Binder[T]) Key() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.env.Key
}

// Err returns the failure of the watched background fetch, if any.
// Redirects are not reported here.
func (b *Binder[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.err
}

// Subscribe registers fn to be called each time the view gets new data.
// The returned function unregisters it.
func (b *Binder[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Invalidate removes the bound Envelope's key from the adapter.
func (b *Binder[T]) Invalidate(ctx context.Context) error {
	return b.cfg.cache.invalidate(ctx, b.adapter(), b.Key())
}

// Close detaches the binder: a background fetch resolving afterwards
// does not update anything. Subscribers are dropped.
func (b *Binder[T]) Close() {
	b.mu.Lock()
	if b.watch != nil {
		b.watch.detached.Store(true)
		b.watch = nil
	}
	clear(b.subs)
	b.mu.Unlock()
}

func (b *Binder[T]) adapter() Adapter {
	if b.cfg.adapter != nil {
		return b.cfg.adapter
	}

	return b.cfg.cache.Adapter()
}

// subscribers returns a snapshot of subscribers. Must be called with mu held.
func (b *Binder[T]) subscribers() []func(T) {
	if len(b.subs) == 0 {
		return nil
	}
	subs := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}

	return subs
}

// SWR renders env's data right away, and, if env has a background fetch,
// renders again with the fetched data once it resolves.
// The fetch's error (or ctx's) is returned, after the first render.
func SWR[T any](ctx context.Context, env Envelope[T], render func(T)) error {
	render(env.Data)
	if env.Deferred == nil {
		return nil
	}

	value, err := env.Deferred.Wait(ctx)
	if err != nil {
		return err
	}
	render(value)

	return nil
}

// deepEqual compares two values by their JSON serialization.
// Values which cannot be serialized are compared with reflect.DeepEqual.
func deepEqual(a, b any) bool {
	rawA, errA := json.Marshal(a)
	rawB, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}

	return bytes.Equal(rawA, rawB)
}
