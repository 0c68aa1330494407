// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"fmt"

	"github.com/actforgood/xlog"
)

// RedisXLogger is a XLog adapter for Redis internal logging contract.
// Redis default logger has an unstructured format (and relies upon standard Go Logger).
// Through this adapter, you can achieve a structured output of the log as a whole,
// but the message inside will still be unstructured.
type RedisXLogger struct {
	logger xlog.Logger
}

// NewRedisXLogger instantiates a new RedisXLogger object.
func NewRedisXLogger(logger xlog.Logger) RedisXLogger {
	return RedisXLogger{
		logger: logger,
	}
}

// Printf implements RedisLogger.
//
// Example of RedisXLogger output:
//
//	{"date":"2022-07-29T09:07:54.915902723Z","lvl":"INFO","msg":"sentinel: new master=\"xswrMaster\" addr=\"some-redis-master:6380\"","pkg":"redis"}
//
// nolint:lll
func (l RedisXLogger) Printf(_ context.Context, format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	if isRedisErrorMessage(msg) {
		l.logger.Error(xlog.MessageKey, msg, "pkg", "redis")
	} else {
		l.logger.Info(xlog.MessageKey, msg, "pkg", "redis")
	}
}
