// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"
)

// ErrNotFound is an error returned by a Storage Load operation if a key does not exist.
var ErrNotFound = errors.New("key not found")

// Storage provides prototype for a raw key-value store, the way a browser's
// local storage is one: values are plain bytes, addressed by string keys.
// A Storage is usually not used directly, but wrapped into a StorageAdapter.
type Storage interface {
	// Save stores the given key-value into storage, replacing any prior value.
	// It returns an error if the key could not be saved.
	Save(ctx context.Context, key string, value []byte) error

	// Load returns a key's value from storage, or an error if something bad happened.
	// If the key is not found, ErrNotFound is returned.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from storage.
	// Deleting a key that does not exist is not an error.
	Delete(ctx context.Context, key string) error
}

// StorageAdapter is an Adapter over a raw Storage.
// Values are encoded with a Codec (JSON by default) on Set,
// and decoded on Get.
type StorageAdapter struct {
	storage Storage
	codec   Codec
}

// StorageAdapterOption defines optional function for configuring a StorageAdapter.
type StorageAdapterOption func(*StorageAdapter)

// StorageAdapterWithCodec sets the codec values are (de)serialized with.
// By default, JSONCodec is used.
func StorageAdapterWithCodec(codec Codec) StorageAdapterOption {
	return func(adapter *StorageAdapter) {
		if codec != nil {
			adapter.codec = codec
		}
	}
}

// NewStorageAdapter instantiates a new StorageAdapter over given storage.
func NewStorageAdapter(storage Storage, opts ...StorageAdapterOption) *StorageAdapter {
	adapter := &StorageAdapter{
		storage: storage,
		codec:   JSONCodec{},
	}
	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// Get returns the decoded value stored under given key.
// A value that cannot be decoded (for example, a plain string written by
// something else directly into the storage) is returned as the raw string, unchanged.
func (adapter *StorageAdapter) Get(ctx context.Context, key string) (any, bool, error) {
	raw, err := adapter.storage.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	value, err := adapter.codec.Decode(raw)
	if err != nil {
		return string(raw), true, nil
	}

	return value, true, nil
}

// Set encodes the value and saves it under given key.
func (adapter *StorageAdapter) Set(ctx context.Context, key string, value any) error {
	raw, err := adapter.codec.Encode(value)
	if err != nil {
		return err
	}

	return adapter.storage.Save(ctx, key, raw)
}

// Remove deletes the key from the underlying storage.
func (adapter *StorageAdapter) Remove(ctx context.Context, key string) error {
	return adapter.storage.Delete(ctx, key)
}

// Storage returns the wrapped raw storage.
func (adapter *StorageAdapter) Storage() Storage {
	return adapter.storage
}
