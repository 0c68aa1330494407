// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"time"
)

// RedisConfig describes how Redis6 / Redis7 storages reach Redis.
// Which client is built depends on Addrs and MasterName, see NewRedis7.
type RedisConfig struct {
	// Addrs holds the node(s) to connect to, as host:port.
	// One address means a single node; several mean cluster seeds,
	// or sentinels when MasterName is set.
	// Example:
	//	Addrs: []string{"routes-cache:6379"}
	//	Addrs: []string{"sentinel-1:26379", "sentinel-2:26379", "sentinel-3:26379"}
	//	Addrs: []string{"cluster-1:7000", "cluster-2:7001", "cluster-3:7002"}
	Addrs []string

	// DB is selected after connecting. Ignored by cluster clients.
	DB int

	// KeyPrefix is prepended to every key, so loader entries
	// do not collide with other data living in the same database.
	KeyPrefix string

	// Auth holds the credentials of redis nodes.
	Auth RedisAuth

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ReadOnly routes read commands to replicas. Cluster only.
	ReadOnly bool

	// MasterName is the name of the master monitored by sentinels. Failover only.
	MasterName string
	// SentinelAuth holds the credentials of sentinel nodes. Failover only.
	SentinelAuth RedisAuth
}

// RedisAuth holds username / password credentials.
type RedisAuth struct {
	Username string
	Password string
}

// IsCluster returns true if a cluster client will be built for this config.
func (rc RedisConfig) IsCluster() bool {
	return len(rc.Addrs) > 1 && rc.MasterName == ""
}

