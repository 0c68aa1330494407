// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/actforgood/xlog"
	"github.com/actforgood/xswr"
)

func init() {
	var _ xswr.RedisLogger = xswr.RedisXLogger{} // ensure RedisXLogger is a RedisLogger
}

func TestRedisXLogger(t *testing.T) {
	t.Parallel()

	t.Run("error message", testRedisXLoggerByLevel(xlog.LevelError, "redis: dial to master=%q failed"))
	t.Run("info message", testRedisXLoggerByLevel(xlog.LevelInfo, "sentinel: new master=%q"))
}

func testRedisXLoggerByLevel(lvl xlog.Level, format string) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			logger      = xlog.NewMockLogger()
			subject     = xswr.NewRedisXLogger(logger)
			masterName  = "xswrMaster"
			expectedMsg = fmt.Sprintf(format, masterName)
			foundMsg    bool
			foundPkg    bool
		)
		defer logger.Close()
		logger.SetLogCallback(lvl, func(keyValues ...any) {
			for i := 0; i+1 < len(keyValues); i += 2 {
				switch keyValues[i] {
				case xlog.MessageKey:
					foundMsg = assertEqual(t, expectedMsg, keyValues[i+1])
				case "pkg":
					foundPkg = assertEqual(t, "redis", keyValues[i+1])
				}
			}
		})

		// act
		subject.Printf(context.Background(), format, masterName)

		// assert
		assertEqual(t, 1, logger.LogCallsCount(lvl))
		assertTrue(t, foundMsg)
		assertTrue(t, foundPkg)
	}
}

func ExampleRedisXLogger() {
	// somewhere in your bootstrap process...

	// initialize an xlog.Logger
	loggerOpts := xlog.NewCommonOpts()
	loggerOpts.MinLevel = xlog.FixedLevelProvider(xlog.LevelInfo)
	logger := xlog.NewSyncLogger(os.Stdout, xlog.SyncLoggerWithOptions(loggerOpts))
	// set the xlog.Logger Redis adapter
	redisLogger := xswr.NewRedisXLogger(logger)
	xswr.SetRedis7Logger(redisLogger) // or xswr.SetRedis6Logger(redisLogger),
	// depending which ver. of Redis you're using.

	// the same logger can report swallowed cache adapter failures.
	_ = xswr.NewCache(xswr.CacheWithLogger(logger))

	// somewhere in your shutdown process ...
	_ = logger.Close()
}

func BenchmarkRedisXLogger(b *testing.B) {
	redisLogger := xswr.NewRedisXLogger(xlog.NopLogger{})
	format := "redis: dial to master=%q failed"
	masterName := "benchLoggerMaster"
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		redisLogger.Printf(ctx, format, masterName)
	}
}
