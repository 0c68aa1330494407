// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"strings"

	redis6 "github.com/go-redis/redis/v8"
	redis7 "github.com/redis/go-redis/v9"
)

// RedisLogger is go-redis internal logging contract,
// see also https://github.com/redis/go-redis/blob/v9.5.1/internal/log.go .
// It is implemented by RedisXLogger and RedisSLogger.
type RedisLogger interface {
	Printf(ctx context.Context, format string, v ...any)
}

// SetRedis6Logger sets given logger for Redis6 clients.
func SetRedis6Logger(logger RedisLogger) {
	redis6.SetLogger(logger)
}

// SetRedis7Logger sets given logger for Redis7 clients.
func SetRedis7Logger(logger RedisLogger) {
	redis7.SetLogger(logger)
}

// isRedisErrorMessage categorizes a redis message as error based on
// presence of some words like "failed"/"error".
func isRedisErrorMessage(msg string) bool {
	return strings.Contains(msg, "failed") || strings.Contains(msg, "error")
}
