// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"slices"
	"time"

	"github.com/actforgood/xconf"
)

const (
	// RedisCfgKeyAddrs is the key under which xconf.Config expects Redis server(s).
	// Value should be a slice of string(s).
	RedisCfgKeyAddrs = "xswr.redis.addrs"
	// RedisCfgKeyDB is the key under which xconf.Config expects Redis DB.
	RedisCfgKeyDB = "xswr.redis.db"
	// RedisCfgKeyKeyPrefix is the key under which xconf.Config expects the keys prefix.
	RedisCfgKeyKeyPrefix = "xswr.redis.keyprefix"
	// RedisCfgKeyAuthUsername is the key under which xconf.Config expects auth username.
	RedisCfgKeyAuthUsername = "xswr.redis.auth.username"
	// RedisCfgKeyAuthPassword is the key under which xconf.Config expects auth password.
	RedisCfgKeyAuthPassword = "xswr.redis.auth.password"
	// RedisCfgKeyDialTimeout is the key under which xconf.Config expects dial timeout.
	RedisCfgKeyDialTimeout = "xswr.redis.timeout.dial"
	// RedisCfgKeyReadTimeout is the key under which xconf.Config expects read timeout.
	RedisCfgKeyReadTimeout = "xswr.redis.timeout.read"
	// RedisCfgKeyWriteTimeout is the key under which xconf.Config expects write timeout.
	RedisCfgKeyWriteTimeout = "xswr.redis.timeout.write"
	// RedisCfgKeyClusterReadonly is the key under which xconf.Config expects readonly flag.
	RedisCfgKeyClusterReadonly = "xswr.redis.cluster.readonly"
	// RedisCfgKeyFailoverMasterName is the key under which xconf.Config expects master name.
	RedisCfgKeyFailoverMasterName = "xswr.redis.failover.mastername"
	// RedisCfgKeyFailoverAuthUsername is the key under which xconf.Config expects sentinel auth username.
	RedisCfgKeyFailoverAuthUsername = "xswr.redis.failover.auth.username"
	// RedisCfgKeyFailoverAuthPassword is the key under which xconf.Config expects sentinel auth password.
	RedisCfgKeyFailoverAuthPassword = "xswr.redis.failover.auth.password"
)

var redisConfigKeys = []string{
	RedisCfgKeyAddrs,
	RedisCfgKeyDB,
	RedisCfgKeyKeyPrefix,
	RedisCfgKeyAuthUsername,
	RedisCfgKeyAuthPassword,
	RedisCfgKeyDialTimeout,
	RedisCfgKeyReadTimeout,
	RedisCfgKeyWriteTimeout,
	RedisCfgKeyClusterReadonly,
	RedisCfgKeyFailoverMasterName,
	RedisCfgKeyFailoverAuthUsername,
	RedisCfgKeyFailoverAuthPassword,
}

// getRedisConfig returns a RedisConfig object populated with values taken from a xconf.Config.
func getRedisConfig(config xconf.Config) RedisConfig {
	return RedisConfig{
		Addrs:     config.Get(RedisCfgKeyAddrs, []string{"127.0.0.1:6379"}).([]string),
		DB:        config.Get(RedisCfgKeyDB, 0).(int),
		KeyPrefix: config.Get(RedisCfgKeyKeyPrefix, "").(string),
		Auth: RedisAuth{
			Username: config.Get(RedisCfgKeyAuthUsername, "").(string),
			Password: config.Get(RedisCfgKeyAuthPassword, "").(string),
		},
		DialTimeout:  config.Get(RedisCfgKeyDialTimeout, 5*time.Second).(time.Duration),
		ReadTimeout:  config.Get(RedisCfgKeyReadTimeout, 3*time.Second).(time.Duration),
		WriteTimeout: config.Get(RedisCfgKeyWriteTimeout, 5*time.Second).(time.Duration),
		ReadOnly:     config.Get(RedisCfgKeyClusterReadonly, false).(bool),
		MasterName:   config.Get(RedisCfgKeyFailoverMasterName, "").(string),
		SentinelAuth: RedisAuth{
			Username: config.Get(RedisCfgKeyFailoverAuthUsername, "").(string),
			Password: config.Get(RedisCfgKeyFailoverAuthPassword, "").(string),
		},
	}
}

// hasRedisConfigChanged checks if any of changed keys is one of RedisCfgKey* config keys.
func hasRedisConfigChanged(changedKeys []string) bool {
	for _, changedKey := range changedKeys {
		if slices.Contains(redisConfigKeys, changedKey) {
			return true
		}
	}

	return false
}
