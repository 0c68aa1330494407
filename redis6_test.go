// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/actforgood/xswr"
)

func init() {
	var _ xswr.Storage = (*xswr.Redis6)(nil) // ensure Redis6 is a Storage
	var _ io.Closer = (*xswr.Redis6)(nil)    // ensure Redis6 is a Closer
}

func TestRedisConfig_IsCluster(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name     string
		subject  xswr.RedisConfig
		expected bool
	}{
		{
			name:     "single node",
			subject:  xswr.RedisConfig{Addrs: []string{"127.0.0.1:6379"}},
			expected: false,
		},
		{
			name:     "cluster",
			subject:  xswr.RedisConfig{Addrs: []string{"127.0.0.1:7000", "127.0.0.1:7001"}},
			expected: true,
		},
		{
			name: "sentinels",
			subject: xswr.RedisConfig{
				Addrs:      []string{"127.0.0.1:26379", "127.0.0.1:26380"},
				MasterName: "mymaster",
			},
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assertEqual(t, test.expected, test.subject.IsCluster())
		})
	}
}

func ExampleRedis6() {
	storage := xswr.NewRedis6(xswr.RedisConfig{
		Addrs: []string{"127.0.0.1:6379"},
	})
	defer storage.Close()
	adapter := xswr.NewStorageAdapter(storage, xswr.StorageAdapterWithCodec(xswr.MsgpackCodec{}))

	ctx := context.Background()
	if err := adapter.Set(ctx, "/users/2", map[string]any{"name": "A"}); err != nil {
		fmt.Println(err)
	}
	if value, found, err := adapter.Get(ctx, "/users/2"); err != nil {
		fmt.Println(err)
	} else if found {
		fmt.Println(value)
	}

	// should output:
	// map[name:A]
}
