// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"errors"

	"github.com/actforgood/xerr"
)

// Multi is a composite Storage.
// Saving / deleting a key happens in all contained storages.
// A key is loaded from the first storage it is found in
// (in the order storages were provided in the constructor).
type Multi struct {
	storages []Storage
}

// NewMulti initializes a new Multi instance.
func NewMulti(storages ...Storage) Multi {
	return Multi{
		storages: storages,
	}
}

// Save stores the given key-value into all storages.
// It returns an error if the key could not be saved in any of the
// storages (note that the key can end up being saved in the other ones).
func (storage Multi) Save(ctx context.Context, key string, value []byte) error {
	var mErr *xerr.MultiError
	for _, s := range storage.storages {
		if err := s.Save(ctx, key, value); err != nil {
			mErr = mErr.Add(err)
		}
	}

	return mErr.ErrOrNil()
}

// Load returns a key's value from the first storage it finds it in.
// If the key is found in a deeper storage, it is saved also in upfront storage(s).
// If a storage returns an error, but a next one returns the value,
// the value and nil error are returned.
// If the key is not found in any of the storages, ErrNotFound is returned,
// unless some storage gave an error, in which case that error is returned.
func (storage Multi) Load(ctx context.Context, key string) ([]byte, error) {
	var mErr *xerr.MultiError
	for idx, s := range storage.storages {
		val, err := s.Load(ctx, key)
		if err == nil {
			for i := idx - 1; i >= 0; i-- { // save upfront the key
				_ = storage.storages[i].Save(ctx, key, val)
			}

			return val, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		mErr = mErr.Add(err)
	}

	if err := mErr.ErrOrNil(); err != nil {
		return nil, err
	}

	return nil, ErrNotFound
}

// Delete removes the key from all storages.
// It returns an error if the key could not be deleted from any of the storages.
func (storage Multi) Delete(ctx context.Context, key string) error {
	var mErr *xerr.MultiError
	for _, s := range storage.storages {
		if err := s.Delete(ctx, key); err != nil {
			mErr = mErr.Add(err)
		}
	}

	return mErr.ErrOrNil()
}
