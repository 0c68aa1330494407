// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"reflect"
	"sync"
)

// Adapter provides prototype for storing loader data into a cache.
// All operations may block (a remote store is accessed), and thus receive a context.
type Adapter interface {
	// Get returns a key's value.
	// If the key is not found, or its entry is corrupted, found is false and err is nil.
	// An error is returned only if the backing medium itself failed.
	Get(ctx context.Context, key string) (value any, found bool, err error)

	// Set stores the value under given key, replacing any prior entry.
	// It returns an error if the backing medium failed (for example, it's full).
	Set(ctx context.Context, key string, value any) error

	// Remove deletes the key's entry.
	// Removing a key that does not exist is a no-op.
	Remove(ctx context.Context, key string) error
}

// MemoryAdapter is an in process map implementation for Adapter.
// Values are stored as they are, no (de)serialization happens.
// Data does not survive a process restart.
type MemoryAdapter struct {
	items map[string]any
	mu    sync.RWMutex
}

// NewMemoryAdapter instantiates a new, empty, MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		items: make(map[string]any),
	}
}

// Get returns a key's value. Error is always nil.
func (adapter *MemoryAdapter) Get(_ context.Context, key string) (any, bool, error) {
	adapter.mu.RLock()
	value, found := adapter.items[key]
	adapter.mu.RUnlock()

	return value, found, nil
}

// Set stores the value under given key. Error is always nil.
func (adapter *MemoryAdapter) Set(_ context.Context, key string, value any) error {
	adapter.mu.Lock()
	adapter.items[key] = value
	adapter.mu.Unlock()

	return nil
}

// Remove deletes the key's entry. Error is always nil.
func (adapter *MemoryAdapter) Remove(_ context.Context, key string) error {
	adapter.mu.Lock()
	delete(adapter.items, key)
	adapter.mu.Unlock()

	return nil
}

// Len returns the number of stored entries.
func (adapter *MemoryAdapter) Len() int {
	adapter.mu.RLock()
	defer adapter.mu.RUnlock()

	return len(adapter.items)
}

type choiceKind uint8

const (
	choiceNone choiceKind = iota
	choiceAdapter
	choiceStorage
)

// Choice is what a configuration factory produces: either a ready to use
// Adapter, or a raw Storage which will be wrapped into a StorageAdapter.
// The zero Choice means "nothing", and leaves a previous configuration untouched.
type Choice struct {
	kind        choiceKind
	adapter     Adapter
	storage     Storage
	storageOpts []StorageAdapterOption
}

// UseAdapter returns a Choice for given adapter, which will be used as it is.
// A nil adapter, typed or not, yields the zero Choice.
func UseAdapter(adapter Adapter) Choice {
	if isNil(adapter) {
		return Choice{}
	}

	return Choice{kind: choiceAdapter, adapter: adapter}
}

// UseStorage returns a Choice for given raw storage,
// which will be wrapped into a StorageAdapter configured with opts.
func UseStorage(storage Storage, opts ...StorageAdapterOption) Choice {
	if isNil(storage) {
		return Choice{}
	}

	return Choice{kind: choiceStorage, storage: storage, storageOpts: opts}
}

// isNil reports whether v is nil or an interface holding a nil pointer, map, slice, func or chan.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsZero returns true if the choice holds nothing.
func (c Choice) IsZero() bool {
	return c.kind == choiceNone
}

// NewAdapter normalizes a Choice into an Adapter.
// It returns false for a zero Choice.
func NewAdapter(choice Choice) (Adapter, bool) {
	switch choice.kind {
	case choiceAdapter:
		return choice.adapter, true
	case choiceStorage:
		return NewStorageAdapter(choice.storage, choice.storageOpts...), true
	default:
		return nil, false
	}
}
