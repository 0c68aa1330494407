// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"
	"sync"

	"github.com/coocood/freecache"
)

const freecacheMinBufSize = 512 * 1024

// Memory is an in memory, fixed size, implementation for Storage.
// It relies upon Freecache package.
// Unlike MemoryAdapter, it stores bytes, and it can refuse a write
// (value too large for the configured size), the way a full browser storage does.
type Memory struct {
	client  *freecache.Cache
	memSize int64         // memory size in bytes
	mu      *sync.RWMutex // concurrency semaphore used for xconf adapter.
}

// NewMemory initializes a new Memory instance.
//
// Relaying package additional notes:
// The memory size will be set to 512KB at minimum.
// A value larger than 1/1024 of the memory size is refused.
func NewMemory(memSize int) *Memory {
	mem := getRealMemorySize(memSize)

	return &Memory{
		client:  freecache.NewCache(mem),
		memSize: int64(mem),
	}
}

// Save stores the given key-value, with no expiration.
// It returns an error if the value (or the key) is too large.
// Items can be evicted when memory is full.
func (storage *Memory) Save(_ context.Context, key string, value []byte) error {
	storage.rLock()
	err := storage.client.Set([]byte(key), value, 0)
	storage.rUnlock()

	return err
}

// Load returns a key's value.
// If the key is not found, ErrNotFound is returned.
func (storage *Memory) Load(_ context.Context, key string) ([]byte, error) {
	storage.rLock()
	value, err := storage.client.Get([]byte(key))
	storage.rUnlock()

	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrNotFound
	}

	return value, err
}

// Delete removes a key. Error is always nil.
func (storage *Memory) Delete(_ context.Context, key string) error {
	storage.rLock()
	_ = storage.client.Del([]byte(key))
	storage.rUnlock()

	return nil
}

// Len returns the number of stored keys.
func (storage *Memory) Len() int64 {
	storage.rLock()
	defer storage.rUnlock()

	return storage.client.EntryCount()
}

// MemorySize returns the configured memory size, in bytes.
func (storage *Memory) MemorySize() int64 {
	storage.rLock()
	defer storage.rUnlock()

	return storage.memSize
}

func (storage *Memory) rLock() {
	if storage.mu != nil {
		storage.mu.RLock()
	}
}

func (storage *Memory) rUnlock() {
	if storage.mu != nil {
		storage.mu.RUnlock()
	}
}

// getRealMemorySize returns memory according to Freecache min limit (512 Kb).
func getRealMemorySize(memSize int) int {
	return max(memSize, freecacheMinBufSize)
}
