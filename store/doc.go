// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the planning truco registry.

# Key/value stores

Store is a small key/value interface whose Update runs a read-modify-write
over several keys atomically:

  - Memory: a mutex-guarded map, for tests and throwaway runs
  - Redis: WATCH/MULTI/EXEC through go-redis, retried on conflicts
  - db.KV: SQLite or PostgreSQL rows with a version column

Update gives up with ErrConflict after a bounded number of lost races.

# Registry

RegistryRepository stores the registry as two JSON documents under the
"sessions" and "history" keys:

	repo := store.NewRegistryRepository(s)
	err := repo.Mutate(ctx, func(reg *models.Registry) error {
		_, err := truco.JoinSession(reg, user, host)
		return err
	})

A transition that fails leaves both documents untouched.
*/
package store
