// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"context"
	"sync/atomic"
)

// Mock is a Storage mock to be used in UT.
type Mock struct {
	saveCallsCnt   uint32
	saveCallback   func(context.Context, string, []byte) error
	loadCallsCnt   uint32
	loadCallback   func(context.Context, string) ([]byte, error)
	deleteCallsCnt uint32
	deleteCallback func(context.Context, string) error
}

// Save mock logic...
func (mock *Mock) Save(ctx context.Context, key string, value []byte) error {
	atomic.AddUint32(&mock.saveCallsCnt, 1)
	if mock.saveCallback != nil {
		return mock.saveCallback(ctx, key, value)
	}

	return nil
}

// Load mock logic...
func (mock *Mock) Load(ctx context.Context, key string) ([]byte, error) {
	atomic.AddUint32(&mock.loadCallsCnt, 1)
	if mock.loadCallback != nil {
		return mock.loadCallback(ctx, key)
	}

	return nil, ErrNotFound
}

// Delete mock logic...
func (mock *Mock) Delete(ctx context.Context, key string) error {
	atomic.AddUint32(&mock.deleteCallsCnt, 1)
	if mock.deleteCallback != nil {
		return mock.deleteCallback(ctx, key)
	}

	return nil
}

// SetSaveCallback sets the given callback to be executed inside Save() method.
// You can inject yourself to make assertions upon passed parameter(s) this way
// and/or control the returned value.
//
// Usage example:
//
//	mock.SetSaveCallback(func(ctx context.Context, k string, v []byte) error {
//		if k != "expected-key" {
//			t.Error("expected ...")
//		}
//
//		return nil
//	})
func (mock *Mock) SetSaveCallback(callback func(context.Context, string, []byte) error) {
	mock.saveCallback = callback
}

// SetLoadCallback sets the given callback to be executed inside Load() method.
// You can inject yourself to make assertions upon passed parameter(s) this way
// and/or control the returned value.
func (mock *Mock) SetLoadCallback(callback func(context.Context, string) ([]byte, error)) {
	mock.loadCallback = callback
}

// SetDeleteCallback sets the given callback to be executed inside Delete() method.
func (mock *Mock) SetDeleteCallback(callback func(context.Context, string) error) {
	mock.deleteCallback = callback
}

// SaveCallsCount returns the no. of times Save() method was called.
func (mock *Mock) SaveCallsCount() int {
	return int(atomic.LoadUint32(&mock.saveCallsCnt))
}

// LoadCallsCount returns the no. of times Load() method was called.
func (mock *Mock) LoadCallsCount() int {
	return int(atomic.LoadUint32(&mock.loadCallsCnt))
}

// DeleteCallsCount returns the no. of times Delete() method was called.
func (mock *Mock) DeleteCallsCount() int {
	return int(atomic.LoadUint32(&mock.deleteCallsCnt))
}

// MockAdapter is an Adapter mock to be used in UT.
type MockAdapter struct {
	getCallsCnt    uint32
	getCallback    func(context.Context, string) (any, bool, error)
	setCallsCnt    uint32
	setCallback    func(context.Context, string, any) error
	removeCallsCnt uint32
	removeCallback func(context.Context, string) error
}

// Get mock logic...
func (mock *MockAdapter) Get(ctx context.Context, key string) (any, bool, error) {
	atomic.AddUint32(&mock.getCallsCnt, 1)
	if mock.getCallback != nil {
		return mock.getCallback(ctx, key)
	}

	return nil, false, nil
}

// Set mock logic...
func (mock *MockAdapter) Set(ctx context.Context, key string, value any) error {
	atomic.AddUint32(&mock.setCallsCnt, 1)
	if mock.setCallback != nil {
		return mock.setCallback(ctx, key, value)
	}

	return nil
}

// Remove mock logic...
func (mock *MockAdapter) Remove(ctx context.Context, key string) error {
	atomic.AddUint32(&mock.removeCallsCnt, 1)
	if mock.removeCallback != nil {
		return mock.removeCallback(ctx, key)
	}

	return nil
}

// SetGetCallback sets the given callback to be executed inside Get() method.
func (mock *MockAdapter) SetGetCallback(callback func(context.Context, string) (any, bool, error)) {
	mock.getCallback = callback
}

// SetSetCallback sets the given callback to be executed inside Set() method.
func (mock *MockAdapter) SetSetCallback(callback func(context.Context, string, any) error) {
	mock.setCallback = callback
}

// SetRemoveCallback sets the given callback to be executed inside Remove() method.
func (mock *MockAdapter) SetRemoveCallback(callback func(context.Context, string) error) {
	mock.removeCallback = callback
}

// GetCallsCount returns the no. of times Get() method was called.
func (mock *MockAdapter) GetCallsCount() int {
	return int(atomic.LoadUint32(&mock.getCallsCnt))
}

// SetCallsCount returns the no. of times Set() method was called.
func (mock *MockAdapter) SetCallsCount() int {
	return int(atomic.LoadUint32(&mock.setCallsCnt))
}

// RemoveCallsCount returns the no. of times Remove() method was called.
func (mock *MockAdapter) RemoveCallsCount() int {
	return int(atomic.LoadUint32(&mock.removeCallsCnt))
}
