// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storetest checks that a store.Store implementation behaves like
// the in-memory reference.
package storetest

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnvdl/wcf-truco/store"
)

// Run exercises s. The store must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "greeting", []byte(`"hello"`)))
		got, err := s.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, `"hello"`, string(got))

		require.NoError(t, s.Put(ctx, "greeting", []byte(`"bye"`)))
		got, err = s.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, `"bye"`, string(got))
	})

	t.Run("update sees current values", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "a", []byte("1")))

		err := s.Update(ctx, []string{"a", "b"}, func(cur map[string][]byte) (map[string][]byte, error) {
			assert.Equal(t, "1", string(cur["a"]))
			_, ok := cur["b"]
			assert.False(t, ok, "missing keys are absent")
			return map[string][]byte{"a": []byte("2"), "b": []byte("3")}, nil
		})
		require.NoError(t, err)

		a, err := s.Get(ctx, "a")
		require.NoError(t, err)
		b, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "2", string(a))
		assert.Equal(t, "3", string(b))
	})

	t.Run("failed update writes nothing", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "kept", []byte("old")))
		boom := errors.New("boom")

		err := s.Update(ctx, []string{"kept", "new"}, func(cur map[string][]byte) (map[string][]byte, error) {
			return map[string][]byte{"kept": []byte("changed")}, boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := s.Get(ctx, "kept")
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))
		_, err = s.Get(ctx, "new")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty update", func(t *testing.T) {
		err := s.Update(ctx, []string{"untouched"}, func(cur map[string][]byte) (map[string][]byte, error) {
			return nil, nil
		})
		require.NoError(t, err)
		_, err = s.Get(ctx, "untouched")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		const workers = 8
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Update(ctx, []string{"counter"}, func(cur map[string][]byte) (map[string][]byte, error) {
					n := 0
					if b, ok := cur["counter"]; ok {
						n, _ = strconv.Atoi(string(b))
					}
					return map[string][]byte{"counter": []byte(strconv.Itoa(n + 1))}, nil
				})
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, store.ErrConflict)
			}()
		}
		wg.Wait()

		require.Positive(t, succeeded)
		got, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(succeeded), string(got))
	})
}
