// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/alnvdl/wcf-truco/store/storetest"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open("mysql", "whatever")
	if err == nil {
		t.Fatal("Expected error for unsupported database type")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := openSQLite(t)
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Errorf("Expected second CreateSchema to succeed, got %v", err)
	}
}

func TestKV_SQLite(t *testing.T) {
	kv := NewKV(openSQLite(t), 0)
	defer kv.Close()

	storetest.Run(t, kv)
}

// Set TRUCO_TEST_POSTGRES_URL to a disposable database to run.
func TestKV_Postgres(t *testing.T) {
	url := os.Getenv("TRUCO_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TRUCO_TEST_POSTGRES_URL not set")
	}

	conn, err := Open("postgres", url)
	if err != nil {
		t.Fatalf("Failed to open postgres: %v", err)
	}
	if _, err := conn.Exec(`DROP TABLE IF EXISTS kv`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	kv := NewKV(conn, 50)
	defer kv.Close()

	storetest.Run(t, kv)
}

func TestKV_VersionBumps(t *testing.T) {
	conn := openSQLite(t)
	kv := NewKV(conn, 0)
	defer kv.Close()
	ctx := context.Background()

	version := func() int64 {
		var v int64
		if err := conn.QueryRow(`SELECT version FROM kv WHERE key = $1`, "k").Scan(&v); err != nil {
			t.Fatalf("Failed to read version: %v", err)
		}
		return v
	}

	if err := kv.Put(ctx, "k", []byte("a")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if v := version(); v != 1 {
		t.Errorf("Expected version 1, got %d", v)
	}

	err := kv.Update(ctx, []string{"k"}, func(cur map[string][]byte) (map[string][]byte, error) {
		return map[string][]byte{"k": []byte("b")}, nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if v := version(); v != 2 {
		t.Errorf("Expected version 2, got %d", v)
	}
}
