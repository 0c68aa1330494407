// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

// Package xswr offers stale-while-revalidate caching for route loaders.
//
// The result of a loader is stored in a pluggable Adapter, served immediately
// on subsequent navigations, and (in "swr" mode) revalidated in the background.
// The fresh value replaces the cached one once a Binder observes it.
//
// Adapters can be the process-wide in memory map (default), or any raw byte
// Storage (freecache, Redis, Ristretto, BigCache, a layered Multi) wrapped with
// transparent encoding.
//
// Basic flow:
//
//	env, err := xswr.CacheClientLoader(ctx, xswr.LoaderArgs[User]{
//		Request:      r,
//		ServerLoader: loadUser,
//	})
//	binder := xswr.NewBinder[User](navigator)
//	binder.Bind(env)     // on every render
//	user := binder.Data() // freshest known data
package xswr
