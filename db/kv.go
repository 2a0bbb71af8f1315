// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnvdl/wcf-truco/store"
)

// errStale means a row changed between our read and our write
var errStale = errors.New("stale row version")

// KV is a store.Store kept in the kv table. Every row carries a version that
// Update compares before writing.
type KV struct {
	db         *sql.DB
	maxRetries int
}

// NewKV wraps db, which must already have the schema. The KV owns db and
// closes it on Close.
func NewKV(db *sql.DB, maxRetries int) *KV {
	if maxRetries <= 0 {
		maxRetries = store.DefaultMaxRetries
	}
	return &KV{db: db, maxRetries: maxRetries}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, version) VALUES ($1, $2, 1)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, version = kv.version + 1, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k *KV) Update(ctx context.Context, keys []string, fn store.UpdateFunc) error {
	for attempt := 1; attempt <= k.maxRetries; attempt++ {
		err := k.tryUpdate(ctx, keys, fn)
		if errors.Is(err, errStale) {
			slog.Debug("kv update lost a race, retrying", "attempt", attempt, "keys", keys)
			continue
		}
		return err
	}
	return store.ErrConflict
}

func (k *KV) tryUpdate(ctx context.Context, keys []string, fn store.UpdateFunc) error {
	tx, err := k.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cur := make(map[string][]byte, len(keys))
	versions := make(map[string]int64, len(keys))
	for _, key := range keys {
		var value string
		var version int64
		err := tx.QueryRowContext(ctx, `SELECT value, version FROM kv WHERE key = $1`, key).Scan(&value, &version)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		cur[key] = []byte(value)
		versions[key] = version
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}

	for key, value := range next {
		var res sql.Result
		if version, ok := versions[key]; ok {
			res, err = tx.ExecContext(ctx, `
				UPDATE kv SET value = $1, version = version + 1, updated_at = CURRENT_TIMESTAMP
				WHERE key = $2 AND version = $3
			`, string(value), key, version)
		} else {
			res, err = tx.ExecContext(ctx, `
				INSERT INTO kv (key, value, version) VALUES ($1, $2, 1)
				ON CONFLICT (key) DO NOTHING
			`, key, string(value))
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		if n != 1 {
			return errStale
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (k *KV) Close() error {
	return k.db.Close()
}
