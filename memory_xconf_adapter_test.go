// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr_test

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/actforgood/xconf"
	"github.com/actforgood/xswr"
)

func TestMemory_withXConf(t *testing.T) {
	t.Parallel()

	t.Run("expected config is changed", testMemoryWithXConfConfigIsChanged)
	t.Run("expected config is not changed", testMemoryWithXConfConfigIsNotChanged)
}

func testMemoryWithXConfConfigIsChanged(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		reloadConfig  atomic.Bool
		memSize1      = freecacheMinMem // 512 Kb
		initialConfig = map[string]any{
			xswr.MemoryCfgKeyMemorySize: memSize1,
		}
		memSize2       = 1024 * 1024 // 1 Mb
		configReloaded = map[string]any{
			xswr.MemoryCfgKeyMemorySize: memSize2,
		}
		configLoader = xconf.LoaderFunc(func() (map[string]any, error) {
			if reloadConfig.Load() {
				return configReloaded, nil
			}

			return initialConfig, nil
		})
		config, _ = xconf.NewDefaultConfig(
			configLoader,
			xconf.DefaultConfigWithReloadInterval(time.Second),
		)
		subject   = xswr.NewMemoryWithConfig(config)
		keyPrefix = "/users/"
		value     = []byte(`{"id":1}`)
		ctx       = context.Background()
	)
	defer config.Close()
	for i := range 20 {
		requireNil(t, subject.Save(ctx, keyPrefix+strconv.Itoa(i), value))
	}

	// act
	size1, len1 := subject.MemorySize(), subject.Len()
	reloadConfig.Store(true)
	time.Sleep(1300 * time.Millisecond) // let xconf reload the configuration
	size2, len2 := subject.MemorySize(), subject.Len()

	// assert
	assertEqual(t, int64(memSize1), size1)
	assertEqual(t, int64(20), len1)
	assertEqual(t, int64(memSize2), size2)
	assertEqual(t, int64(20), len2)
	for i := range 20 {
		resultValue, err := subject.Load(ctx, keyPrefix+strconv.Itoa(i))
		assertNil(t, err)
		assertEqual(t, value, resultValue)
	}
}

func testMemoryWithXConfConfigIsNotChanged(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		reloadConfig  atomic.Bool
		memSize       = freecacheMinMem
		initialConfig = map[string]any{
			xswr.MemoryCfgKeyMemorySize: memSize,
			"some_other_config":         "some value",
		}
		configReloaded = map[string]any{
			xswr.MemoryCfgKeyMemorySize: memSize,
			"some_other_config":         "some other value",
		}
		configLoader = xconf.LoaderFunc(func() (map[string]any, error) {
			if reloadConfig.Load() {
				return configReloaded, nil
			}

			return initialConfig, nil
		})
		config, _ = xconf.NewDefaultConfig(
			configLoader,
			xconf.DefaultConfigWithReloadInterval(time.Second),
		)
		subject = xswr.NewMemoryWithConfig(config)
		key     = "/users/2"
		value   = []byte(`{"id":2}`)
		ctx     = context.Background()
	)
	defer config.Close()
	requireNil(t, subject.Save(ctx, key, value))

	// act
	reloadConfig.Store(true)
	time.Sleep(1300 * time.Millisecond) // let xconf reload the configuration

	// assert
	assertEqual(t, int64(memSize), subject.MemorySize())
	resultValue, err := subject.Load(ctx, key)
	assertNil(t, err)
	assertEqual(t, value, resultValue)
}

func TestMemory_withXConf_concurrency(t *testing.T) {
	t.Parallel()

	var (
		memSize      atomic.Int64
		configLoader = xconf.LoaderFunc(func() (map[string]any, error) {
			size := int64(freecacheMinMem)
			if time.Now().Unix()%2 == 0 {
				size = memSize.Add(1024) + freecacheMinMem
			}

			return map[string]any{
				xswr.MemoryCfgKeyMemorySize: int(size),
			}, nil
		})
		config, _ = xconf.NewDefaultConfig(
			configLoader,
			xconf.DefaultConfigWithReloadInterval(100*time.Millisecond),
		)
		subject = xswr.NewMemoryWithConfig(config)
	)
	defer config.Close()

	t.Run("wait", func(t *testing.T) { // config must outlive the parallel subtest
		t.Run("concurrency", testStorageConcurrency(subject))
	})
}

func ExampleNewMemoryWithConfig() {
	// somewhere in your bootstrap process...

	config, err := xconf.NewDefaultConfig(
		xconf.LoaderFunc(func() (map[string]any, error) {
			return map[string]any{
				xswr.MemoryCfgKeyMemorySize: 1024 * 1024,
			}, nil
		}),
	)
	if err != nil {
		panic(err)
	}
	defer config.Close()

	adapter := xswr.NewStorageAdapter(xswr.NewMemoryWithConfig(config))
	ctx := context.Background()
	_ = adapter.Set(ctx, "/greeting", "Hello from a configured memory")
	value, found, _ := adapter.Get(ctx, "/greeting")
	if found {
		fmt.Println(value)
	}

	// Output:
	// Hello from a configured memory
}
