// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"

	"github.com/dgraph-io/ristretto"
)

// ErrNotSaved is returned by a Storage which dropped a write under pressure.
var ErrNotSaved = errors.New("value was not saved")

// RistrettoConfig holds the Ristretto storage settings.
// See ristretto.Config for their meaning.
type RistrettoConfig struct {
	NumCounters int64
	MaxCost     int64 // the cost of an entry is its size in bytes
	BufferItems int64
}

// Ristretto is an in memory, cost bounded, implementation for Storage.
// It relies upon Ristretto package.
// It implements io.Closer, and thus it should be closed at your application shutdown.
type Ristretto struct {
	client *ristretto.Cache
}

// NewRistretto instantiates a new Ristretto storage.
func NewRistretto(config RistrettoConfig) (*Ristretto, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Ristretto{client: client}, nil
}

// Save stores the given key-value.
// Ristretto applies writes asynchronously, Save waits for the write to be applied,
// so that a following Load observes it.
// ErrNotSaved is returned if the write was dropped or not admitted by Ristretto's policy
// (for example, an entry whose cost exceeds MaxCost).
func (storage *Ristretto) Save(_ context.Context, key string, value []byte) error {
	ok := storage.client.Set(key, value, int64(len(value)))
	storage.client.Wait()
	if !ok {
		return ErrNotSaved
	}
	if _, found := storage.client.Get(key); !found {
		return ErrNotSaved
	}

	return nil
}

// Load returns a key's value.
// If the key is not found, ErrNotFound is returned.
func (storage *Ristretto) Load(_ context.Context, key string) ([]byte, error) {
	value, found := storage.client.Get(key)
	if !found {
		return nil, ErrNotFound
	}
	raw, ok := value.([]byte)
	if !ok { // unexpected entry shape, drop it
		storage.client.Del(key)

		return nil, ErrNotFound
	}

	return raw, nil
}

// Delete removes a key. Error is always nil.
func (storage *Ristretto) Delete(_ context.Context, key string) error {
	storage.client.Del(key)

	return nil
}

// Close stops Ristretto's background goroutines.
// Returned error is always nil.
func (storage *Ristretto) Close() error {
	storage.client.Close()

	return nil
}
