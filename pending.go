// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
)

// Pending is the handle of a fetch running in background.
// It resolves exactly once, with a value or an error.
// There is no way to cancel the fetch through the handle; consumers
// which lose interest simply stop waiting for it.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// NewPending starts fn in background and returns its handle.
func NewPending[T any](ctx context.Context, fn LoaderFunc[T]) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = fn(ctx)
	}()

	return p
}

// Resolved returns an already resolved Pending.
func Resolved[T any](value T) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{}), value: value}
	close(p.done)

	return p
}

// Rejected returns an already failed Pending.
func Rejected[T any](err error) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{}), err: err}
	close(p.done)

	return p
}

// Done returns a channel which is closed when the fetch completes.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Result blocks until the fetch completes and returns its outcome.
func (p *Pending[T]) Result() (T, error) {
	<-p.done

	return p.value, p.err
}

// Wait is like Result, but stops waiting when ctx is done,
// in which case ctx's error is returned. The fetch keeps running.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}
