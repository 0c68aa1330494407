// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/actforgood/xswr"
)

func benchStorageSave(storage xswr.Storage) func(b *testing.B) {
	return func(b *testing.B) {
		ctx, key, value := getBenchInput()

		b.ReportAllocs()
		b.ResetTimer()

		for b.Loop() {
			if err := storage.Save(ctx, key, value); err != nil {
				b.Error(err)
			}
		}
	}
}

func benchStorageLoad(storage xswr.Storage) func(b *testing.B) {
	return func(b *testing.B) {
		ctx, key, value := getBenchInput()
		if err := storage.Save(ctx, key, value); err != nil {
			b.Fatal(err)
		}

		b.ReportAllocs()
		b.ResetTimer()

		for b.Loop() {
			if _, err := storage.Load(ctx, key); err != nil {
				b.Error(err)
			}
		}
	}
}

func benchLoader(opts ...xswr.LoaderOption) func(b *testing.B) {
	return func(b *testing.B) {
		ctx := context.Background()
		cache := xswr.NewCache()
		args := xswr.LoaderArgs[benchUser]{
			ServerLoader: func(context.Context) (benchUser, error) {
				return benchUser{ID: 2, Name: "bench"}, nil
			},
		}
		opts = append(opts, xswr.LoaderWithCache(cache))
		var n int

		b.ReportAllocs()
		b.ResetTimer()

		for b.Loop() {
			key := "/users/" + strconv.Itoa(n%100)
			n++
			env, err := xswr.CacheClientLoader(ctx, args, append(opts, xswr.LoaderWithKey(key))...)
			if err != nil {
				b.Error(err)
			}
			if env.Deferred != nil {
				_, _ = env.Deferred.Result()
			}
		}
	}
}

type benchUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func getBenchInput() (context.Context, string, []byte) {
	return context.Background(), "xswr_bench_key", []byte("benchmark")
}
