// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Stats holds loader cache statistics.
//
// They can be useful to be reported to metrics systems like Prometheus / DataDog, or they
// can just be used for debug purposes.
type Stats struct {
	// Hits represents the number of loader lookups which found a cached entry.
	Hits int64
	// Misses represents the number of loader lookups which did not find a cached entry
	// (including entries which could not be read).
	Misses int64
	// Revalidations represents the number of background fetches started.
	Revalidations int64
	// Revalidated represents the number of background fetches whose result was applied by a Binder.
	Revalidated int64
	// RevalidationFailures represents the number of background fetches which failed
	// (redirects included).
	RevalidationFailures int64
	// Stores represents the number of successful writes into the adapter.
	Stores int64
	// Invalidations represents the number of successfully removed keys.
	Invalidations int64
	// AdapterErrors represents the number of adapter failures which were swallowed.
	AdapterErrors int64
}

// String implements fmt.Stringer.
// Returns a human friendly stats representation.
//
// Example:
//
//	hits=30 misses=10 hitRate=75.00% revalidations=25 revalidated=24 revalidationFailures=1 stores=40 invalidations=2 adapterErrors=0
func (s Stats) String() string {
	buf := make([]byte, 0, 160)
	buf = append(buf, "hits="...)
	buf = strconv.AppendInt(buf, s.Hits, 10)
	buf = append(buf, " misses="...)
	buf = strconv.AppendInt(buf, s.Misses, 10)

	lookups := s.Hits + s.Misses
	hitRatePerc := 100.0
	if lookups > 0 {
		hitRatePerc = float64(s.Hits) / float64(lookups) * 100
	}
	buf = append(buf, " hitRate="...)
	buf = strconv.AppendFloat(buf, hitRatePerc, 'f', 2, 32)
	buf = append(buf, '%')
	buf = append(buf, " revalidations="...)
	buf = strconv.AppendInt(buf, s.Revalidations, 10)
	buf = append(buf, " revalidated="...)
	buf = strconv.AppendInt(buf, s.Revalidated, 10)
	buf = append(buf, " revalidationFailures="...)
	buf = strconv.AppendInt(buf, s.RevalidationFailures, 10)
	buf = append(buf, " stores="...)
	buf = strconv.AppendInt(buf, s.Stores, 10)
	buf = append(buf, " invalidations="...)
	buf = strconv.AppendInt(buf, s.Invalidations, 10)
	buf = append(buf, " adapterErrors="...)
	buf = strconv.AppendInt(buf, s.AdapterErrors, 10)

	return string(buf)
}

// statsCounters are the live counters behind Stats.
type statsCounters struct {
	hits                 atomic.Int64
	misses               atomic.Int64
	revalidations        atomic.Int64
	revalidated          atomic.Int64
	revalidationFailures atomic.Int64
	stores               atomic.Int64
	invalidations        atomic.Int64
	adapterErrors        atomic.Int64
}

func (c *statsCounters) snapshot() Stats {
	return Stats{
		Hits:                 c.hits.Load(),
		Misses:               c.misses.Load(),
		Revalidations:        c.revalidations.Load(),
		Revalidated:          c.revalidated.Load(),
		RevalidationFailures: c.revalidationFailures.Load(),
		Stores:               c.stores.Load(),
		Invalidations:        c.invalidations.Load(),
		AdapterErrors:        c.adapterErrors.Load(),
	}
}

// StatsWatcher can be used to execute a given callback
// upon a Cache's stats, interval based.
// It implements io.Closer and should be closed at your application shutdown.
type StatsWatcher struct {
	*watcher  // so we can use finalizer
	watchOnce sync.Once
	closeOnce sync.Once
}

type watcher struct {
	interval time.Duration
	ticker   *time.Ticker
	wg       sync.WaitGroup // used to notify that goroutine has finished
	closed   chan struct{}  // used to notify the goroutine to finish
	cache    *Cache         // watched cache stats
}

// NewStatsWatcher instantiates a new StatsWatcher object.
func NewStatsWatcher(cache *Cache, interval time.Duration) *StatsWatcher {
	return &StatsWatcher{
		watcher: &watcher{
			interval: interval,
			cache:    cache,
		},
	}
}

// Watch executes fn asynchronously, interval based.
// Calling Watch multiple times has no effect.
func (sw *StatsWatcher) Watch(ctx context.Context, fn func(context.Context, Stats)) {
	sw.watchOnce.Do(func() {
		sw.watcher.watch(ctx, fn)
		// register also a finalizer, just in case, user forgets to call Close().
		runtime.SetFinalizer(sw, (*StatsWatcher).Close)
	})
}

// Close stops the underlying ticker used to execute the callback, interval based, avoiding memory leaks.
// It should be called at your application shutdown.
// It implements io.Closer interface, and the returned error can be disregarded (is nil all the time).
func (sw *StatsWatcher) Close() error {
	if sw != nil && sw.ticker != nil {
		sw.closeOnce.Do(func() {
			sw.watcher.close()
			runtime.SetFinalizer(sw, nil)
		})
	}

	return nil
}

func (w *watcher) watch(ctx context.Context, fn func(context.Context, Stats)) {
	w.ticker = time.NewTicker(w.interval)
	w.closed = make(chan struct{}, 1)
	w.wg.Add(1)
	go w.watchAsync(ctx, fn)
}

// watchAsync executes fn, interval based, until Close() is called or ctx is done.
func (w *watcher) watchAsync(ctx context.Context, fn func(context.Context, Stats)) {
	defer w.ticker.Stop()
	defer w.wg.Done()

	for {
		select {
		case <-w.closed:
			return
		case <-ctx.Done():
			return
		case <-w.ticker.C:
			fn(ctx, w.cache.Stats())
		}
	}
}

func (w *watcher) close() {
	if w != nil {
		close(w.closed)
		w.wg.Wait()
	}
}
