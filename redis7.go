// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"
	"sync"

	redis7 "github.com/redis/go-redis/v9"
)

// Redis7 is Redis (distributed, ver.7) based implementation for Storage.
// Entries survive a process restart, and are shared by all processes using the same Redis.
// It implements io.Closer, and thus it should be closed at your application shutdown.
type Redis7 struct {
	client    redis7.UniversalClient
	keyPrefix string
	mu        *sync.RWMutex // concurrency semaphore used for xconf adapter.
}

// NewRedis7 instantiates a new Redis7 Storage instance (compatible with Redis ver.7).
//
// 1. If the MasterName option is specified, a sentinel-backed FailoverClient is used behind.
// 2. If the number of Addrs is two or more, a ClusterClient is used behind.
// 3. Otherwise, a single-node Client is used.
func NewRedis7(config RedisConfig) *Redis7 {
	return &Redis7{
		client:    redis7.NewUniversalClient(getRedis7UniversalOptions(config)),
		keyPrefix: config.KeyPrefix,
	}
}

// Save stores the given key-value, with no expiration.
// It returns an error if the key could not be saved.
func (storage *Redis7) Save(ctx context.Context, key string, value []byte) error {
	storage.rLock()
	defer storage.rUnlock()

	return storage.client.Set(ctx, storage.keyPrefix+key, value, 0).Err()
}

// Load returns a key's value, or an error if something bad happened.
// If the key is not found, ErrNotFound is returned.
func (storage *Redis7) Load(ctx context.Context, key string) ([]byte, error) {
	storage.rLock()
	value, err := storage.client.Get(ctx, storage.keyPrefix+key).Bytes()
	storage.rUnlock()

	if errors.Is(err, redis7.Nil) {
		return nil, ErrNotFound
	}

	return value, err
}

// Delete removes a key, or returns an error if something bad happened.
func (storage *Redis7) Delete(ctx context.Context, key string) error {
	storage.rLock()
	defer storage.rUnlock()

	return storage.client.Del(ctx, storage.keyPrefix+key).Err()
}

// Close closes the underlying Redis client.
func (storage *Redis7) Close() (err error) {
	storage.rLock()
	err = storage.client.Close()
	storage.rUnlock()

	return
}

func (storage *Redis7) rLock() {
	if storage.mu != nil {
		storage.mu.RLock()
	}
}

func (storage *Redis7) rUnlock() {
	if storage.mu != nil {
		storage.mu.RUnlock()
	}
}

// getRedis7UniversalOptions converts a RedisConfig object to a redis7.UniversalOptions object.
func getRedis7UniversalOptions(cfg RedisConfig) *redis7.UniversalOptions {
	return &redis7.UniversalOptions{
		Addrs:        cfg.Addrs,
		DB:           cfg.DB,
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		ReadOnly: cfg.ReadOnly,

		MasterName:       cfg.MasterName,
		SentinelUsername: cfg.SentinelAuth.Username,
		SentinelPassword: cfg.SentinelAuth.Password,
	}
}
