// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound indicates a key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrConflict indicates an update kept losing against concurrent writers.
	ErrConflict = errors.New("too many concurrent updates")
)

// DefaultMaxRetries bounds optimistic update attempts
const DefaultMaxRetries = 5

// UpdateFunc receives the current values of the requested keys (missing keys
// are absent from the map) and returns the values to write. Returning an
// error aborts the update without writing anything. It may be called more
// than once when a concurrent writer wins a race.
type UpdateFunc func(cur map[string][]byte) (map[string][]byte, error)

// Store is a durable key/value store with atomic multi-key updates
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, keys []string, fn UpdateFunc) error
	Close() error
}

// Memory is a process-local Store
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = clone(value)
	return nil
}

func (m *Memory) Update(ctx context.Context, keys []string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			cur[k] = clone(v)
		}
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}
	for k, v := range next {
		m.data[k] = clone(v)
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
