// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"github.com/actforgood/xconf"
)

const (
	// CacheCfgKeyMode is the key under which xconf.Config expects the default loader mode,
	// "swr" or "normal".
	CacheCfgKeyMode      = "xswr.mode"
	cacheCfgDefValueMode = string(ModeSWR)
	// CacheCfgKeyServerSide is the key under which xconf.Config expects the server side flag.
	CacheCfgKeyServerSide      = "xswr.serverside"
	cacheCfgDefValueServerSide = false
)

// NewCacheWithConfig initializes a Cache with mode and server side flag taken from a xconf.Config.
// Values from config take precedence over the ones given through opts.
//
// An observer is registered to xconf.DefaultConfig (which knows to reload configuration).
// In case any of the keys above is changed, the Cache picks up the new value;
// loaders already running keep the mode they started with.
func NewCacheWithConfig(config xconf.Config, opts ...CacheOption) *Cache {
	cache := NewCache(opts...)
	cache.setMode(Mode(config.Get(CacheCfgKeyMode, cacheCfgDefValueMode).(string)))
	cache.serverSide.Store(config.Get(CacheCfgKeyServerSide, cacheCfgDefValueServerSide).(bool))

	if defConfig, ok := config.(*xconf.DefaultConfig); ok {
		defConfig.RegisterObserver(cache.onConfigChange)
	}

	return cache
}

// onConfigChange is a callback registered to xconf.DefaultConfig on NewCacheWithConfig.
func (cache *Cache) onConfigChange(config xconf.Config, changedKeys ...string) {
	for _, changedKey := range changedKeys {
		switch changedKey {
		case CacheCfgKeyMode:
			cache.setMode(Mode(config.Get(CacheCfgKeyMode, cacheCfgDefValueMode).(string)))
		case CacheCfgKeyServerSide:
			cache.serverSide.Store(config.Get(CacheCfgKeyServerSide, cacheCfgDefValueServerSide).(bool))
		}
	}
}
