// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"sync"

	"github.com/actforgood/xconf"
	redis7 "github.com/redis/go-redis/v9"
)

// NewRedis7WithConfig initializes a Redis7 Storage with configuration taken from a xconf.Config.
//
// Keys under which configuration is expected are defined in RedisCfgKey* constants.
//
// An observer is registered to xconf.DefaultConfig (which knows to reload configuration).
// In case any config value requested by Redis7 is changed, the Redis7 is reinitialized with the new config.
func NewRedis7WithConfig(config xconf.Config) *Redis7 {
	storage := NewRedis7(getRedisConfig(config))
	storage.mu = new(sync.RWMutex)

	if defConfig, ok := config.(*xconf.DefaultConfig); ok {
		defConfig.RegisterObserver(storage.onConfigChange)
	}

	return storage
}

// onConfigChange is a callback registered to xconf.DefaultConfig on NewRedis7WithConfig.
func (storage *Redis7) onConfigChange(config xconf.Config, changedKeys ...string) {
	if !hasRedisConfigChanged(changedKeys) {
		return
	}

	redisConfig := getRedisConfig(config)
	newClient := redis7.NewUniversalClient(getRedis7UniversalOptions(redisConfig))

	storage.mu.Lock()
	oldClient := storage.client
	storage.client = newClient
	storage.keyPrefix = redisConfig.KeyPrefix
	storage.mu.Unlock()

	_ = oldClient.Close()
}
