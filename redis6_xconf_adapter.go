// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"sync"

	"github.com/actforgood/xconf"
	redis6 "github.com/go-redis/redis/v8"
)

// NewRedis6WithConfig initializes a Redis6 Storage with configuration taken from a xconf.Config.
//
// Keys under which configuration is expected are defined in RedisCfgKey* constants.
//
// An observer is registered to xconf.DefaultConfig (which knows to reload configuration).
// In case any config value requested by Redis6 is changed, the Redis6 is reinitialized with the new config.
func NewRedis6WithConfig(config xconf.Config) *Redis6 {
	storage := NewRedis6(getRedisConfig(config))
	storage.mu = new(sync.RWMutex)

	if defConfig, ok := config.(*xconf.DefaultConfig); ok {
		defConfig.RegisterObserver(storage.onConfigChange)
	}

	return storage
}

// onConfigChange is a callback registered to xconf.DefaultConfig on NewRedis6WithConfig.
func (storage *Redis6) onConfigChange(config xconf.Config, changedKeys ...string) {
	if !hasRedisConfigChanged(changedKeys) {
		return
	}

	redisConfig := getRedisConfig(config)
	newClient := redis6.NewUniversalClient(getRedis6UniversalOptions(redisConfig))

	storage.mu.Lock()
	oldClient := storage.client
	storage.client = newClient
	storage.keyPrefix = redisConfig.KeyPrefix
	storage.mu.Unlock()

	_ = oldClient.Close()
}
