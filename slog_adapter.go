// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"fmt"
	"log/slog"
)

// RedisSLogger is a log/slog adapter for Redis internal logging contract.
// See also RedisXLogger.
type RedisSLogger struct {
	logger *slog.Logger
}

// NewRedisSLogger instantiates a new RedisSLogger object.
func NewRedisSLogger(logger *slog.Logger) RedisSLogger {
	return RedisSLogger{
		logger: logger,
	}
}

// Printf implements RedisLogger.
func (l RedisSLogger) Printf(ctx context.Context, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	if isRedisErrorMessage(msg) {
		l.logger.ErrorContext(ctx, msg, "pkg", "redis")
	} else {
		l.logger.InfoContext(ctx, msg, "pkg", "redis")
	}
}
