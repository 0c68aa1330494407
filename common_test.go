// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/actforgood/xswr"
)

func testStorageSaveLoad(subject xswr.Storage) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			key   = "test-save-load-key"
			value = []byte("test value")
			ctx   = context.Background()
		)

		// act & assert save
		resultErr := subject.Save(ctx, key, value)
		requireNil(t, resultErr)

		for range 50 {
			// act & assert load
			resultValue, resultErr := subject.Load(ctx, key)
			assertNil(t, resultErr)
			assertEqual(t, value, resultValue)
		}
	}
}

func testStorageOverwrite(subject xswr.Storage) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			key    = "test-overwrite-key"
			value1 = []byte("test value 1")
			value2 = []byte("test value 2")
			ctx    = context.Background()
		)

		// act
		requireNil(t, subject.Save(ctx, key, value1))
		requireNil(t, subject.Save(ctx, key, value2))
		resultValue, resultErr := subject.Load(ctx, key)

		// assert
		assertNil(t, resultErr)
		assertEqual(t, value2, resultValue)
	}
}

func testStorageWithNotExistKey(subject xswr.Storage) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			key = "test-this-key-does-not-exist"
			ctx = context.Background()
		)

		// act
		resultValue, resultErr := subject.Load(ctx, key)

		// assert
		assertTrue(t, errors.Is(resultErr, xswr.ErrNotFound))
		assertNil(t, resultValue)
	}
}

func testStorageDeleteKey(subject xswr.Storage) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			key   = "test-delete-key"
			value = []byte("test value")
			ctx   = context.Background()
		)
		requireNil(t, subject.Save(ctx, key, value))

		// act & assert delete
		resultErr := subject.Delete(ctx, key)
		requireNil(t, resultErr)

		// act & assert load
		resultValue, resultErr := subject.Load(ctx, key)
		assertTrue(t, errors.Is(resultErr, xswr.ErrNotFound))
		assertNil(t, resultValue)

		// act & assert delete again, not an error
		resultErr = subject.Delete(ctx, key)
		assertNil(t, resultErr)
	}
}

func testStorageConcurrency(subject xswr.Storage) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// Note: test to be run with -race and see no race conditions occur.
		// arrange
		var (
			commonKey    = "test-concurrency-key"
			goroutinesNo = 20
			wg           sync.WaitGroup
		)
		err := subject.Save(context.Background(), commonKey, []byte("test value"))
		requireNil(t, err)

		wg.Add(goroutinesNo)
		for threadNo := range goroutinesNo {
			go func(thread int) {
				defer wg.Done()
				ctx := context.Background()
				for i := range 10 {
					key := "test-concurrency-key-" + strconv.Itoa(thread) + "-" + strconv.Itoa(i)
					assertNil(t, subject.Save(ctx, key, []byte("test value")))
					_, err := subject.Load(ctx, key)
					assertNil(t, err)
					_, err = subject.Load(ctx, commonKey)
					assertNil(t, err)
					assertNil(t, subject.Delete(ctx, key))
					time.Sleep(time.Millisecond)
				}
			}(threadNo)
		}
		wg.Wait()
	}
}

// testAdapterRoundTrip checks that values read back are deep equal to written ones.
// Values are given in the shape a JSON decoder produces, so that they compare equal
// also for serializing adapters.
func testAdapterRoundTrip(subject xswr.Adapter) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		tests := [...]struct {
			name  string
			key   string
			value any
		}{
			{
				name:  "object",
				key:   "/users/2",
				value: map[string]any{"id": float64(2), "name": "A"},
			},
			{
				name:  "nested",
				key:   "/users/3?tab=posts#latest",
				value: map[string]any{"user": map[string]any{"tags": []any{"a", "b"}, "active": true}},
			},
			{
				name:  "list",
				key:   "/list",
				value: []any{float64(1), "two", nil},
			},
			{
				name:  "string",
				key:   "/string",
				value: "plain text",
			},
			{
				name:  "number",
				key:   "/number",
				value: float64(3.14),
			},
		}
		ctx := context.Background()

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				// act
				resultErr := subject.Set(ctx, test.key, test.value)
				requireNil(t, resultErr)
				resultValue, resultFound, resultErr := subject.Get(ctx, test.key)

				// assert
				assertNil(t, resultErr)
				assertTrue(t, resultFound)
				assertEqual(t, test.value, resultValue)
			})
		}
	}
}

func testAdapterRemove(subject xswr.Adapter) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		// arrange
		var (
			key = "/test-remove"
			ctx = context.Background()
		)
		requireNil(t, subject.Set(ctx, key, map[string]any{"a": "b"}))

		// act
		resultErr := subject.Remove(ctx, key)

		// assert
		assertNil(t, resultErr)
		resultValue, resultFound, resultErr := subject.Get(ctx, key)
		assertNil(t, resultErr)
		assertFalse(t, resultFound)
		assertNil(t, resultValue)

		// act & assert removing an absent key
		assertNil(t, subject.Remove(ctx, key))
		assertNil(t, subject.Remove(ctx, "/never-set"))
	}
}
