// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db keeps the key/value store in SQLite or PostgreSQL.

# Connecting

Open picks the driver from the database type:

	conn, err := db.Open("sqlite", "file:truco.db")   // modernc.org/sqlite
	conn, err := db.Open("postgres", "postgres://...") // lib/pq

SQLite connections are limited to one open connection, which also makes
":memory:" databases usable from several goroutines.

# Schema Creation

CreateSchema creates the single kv table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - kv: key (primary key), value (JSON text), version, updated_at

# Optimistic Updates

KV.Update reads the rows and their versions inside a transaction, then
writes with

	UPDATE kv SET ... WHERE key = $2 AND version = $3

A row that changed in between affects zero rows; the transaction is rolled
back and the update retried, up to the configured limit.
*/
package db
