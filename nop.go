// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
)

// Nop is a no-operation Storage which does nothing.
// It simply ignores saves and returns ErrNotFound.
// Wrapped into an adapter, it disables caching: every navigation fetches.
type Nop struct{}

// Save does nothing.
func (Nop) Save(context.Context, string, []byte) error {
	return nil
}

// Load returns ErrNotFound.
func (Nop) Load(context.Context, string) ([]byte, error) {
	return nil, ErrNotFound
}

// Delete does nothing.
func (Nop) Delete(context.Context, string) error {
	return nil
}
