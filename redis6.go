// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"
	"sync"

	redis6 "github.com/go-redis/redis/v8"
)

// Redis6 is Redis (distributed, ver.6) based implementation for Storage.
// Entries survive a process restart, and are shared by all processes using the same Redis.
// It implements io.Closer, and thus it should be closed at your application shutdown.
type Redis6 struct {
	client    redis6.UniversalClient
	keyPrefix string
	mu        *sync.RWMutex // concurrency semaphore used for xconf adapter.
}

// NewRedis6 instantiates a new Redis6 Storage instance (compatible with Redis ver.6).
//
// 1. If the MasterName option is specified, a sentinel-backed FailoverClient is used behind.
// 2. If the number of Addrs is two or more, a ClusterClient is used behind.
// 3. Otherwise, a single-node Client is used.
func NewRedis6(config RedisConfig) *Redis6 {
	return &Redis6{
		client:    redis6.NewUniversalClient(getRedis6UniversalOptions(config)),
		keyPrefix: config.KeyPrefix,
	}
}

// Save stores the given key-value, with no expiration.
// It returns an error if the key could not be saved.
func (storage *Redis6) Save(ctx context.Context, key string, value []byte) error {
	storage.rLock()
	defer storage.rUnlock()

	return storage.client.Set(ctx, storage.keyPrefix+key, value, 0).Err()
}

// Load returns a key's value, or an error if something bad happened.
// If the key is not found, ErrNotFound is returned.
func (storage *Redis6) Load(ctx context.Context, key string) ([]byte, error) {
	storage.rLock()
	value, err := storage.client.Get(ctx, storage.keyPrefix+key).Bytes()
	storage.rUnlock()

	if errors.Is(err, redis6.Nil) {
		return nil, ErrNotFound
	}

	return value, err
}

// Delete removes a key, or returns an error if something bad happened.
func (storage *Redis6) Delete(ctx context.Context, key string) error {
	storage.rLock()
	defer storage.rUnlock()

	return storage.client.Del(ctx, storage.keyPrefix+key).Err()
}

// Close closes the underlying Redis client.
func (storage *Redis6) Close() (err error) {
	storage.rLock()
	err = storage.client.Close()
	storage.rUnlock()

	return
}

func (storage *Redis6) rLock() {
	if storage.mu != nil {
		storage.mu.RLock()
	}
}

func (storage *Redis6) rUnlock() {
	if storage.mu != nil {
		storage.mu.RUnlock()
	}
}

// getRedis6UniversalOptions converts a RedisConfig object to a redis6.UniversalOptions object.
func getRedis6UniversalOptions(cfg RedisConfig) *redis6.UniversalOptions {
	return &redis6.UniversalOptions{
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
