// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alnvdl/wcf-truco/auth"
	"github.com/alnvdl/wcf-truco/cliparse"
	"github.com/alnvdl/wcf-truco/db"
	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/store"
)

// Epoch is the starting time of every test Clock
var Epoch = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

// Clock is a manually advanced time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetupTestStore creates an in-memory SQLite store with the full schema
func SetupTestStore(t *testing.T) *store.RegistryRepository {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	kv := db.NewKV(conn, 0)
	t.Cleanup(func() { kv.Close() })
	return store.NewRegistryRepository(kv)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		StoreType:    "sqlite",
		DatabaseURL:  ":memory:",
		HistoryLimit: models.DefaultHistoryLimit,
		ConfirmTTL:   time.Minute,
		TimeFormat:   "%Y-%m-%d %H:%M:%S",
		MaxRetries:   5,
		LogLevel:     "info",
	}
}

// LoginAs logs name into dir and returns the resulting context
func LoginAs(t *testing.T, dir *auth.Directory, name string) context.Context {
	t.Helper()

	ctx, err := dir.Login(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to log in %s: %v", name, err)
	}
	return ctx
}

// SeedRegistry saves reg as the stored registry, replacing whatever was there
func SeedRegistry(t *testing.T, repo *store.RegistryRepository, reg *models.Registry) {
	t.Helper()

	err := repo.Mutate(context.Background(), func(cur *models.Registry) error {
		*cur = *reg
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to seed registry: %v", err)
	}
}

// AssertText checks that a response succeeded with exactly want
func AssertText(t *testing.T, resp models.Response, want string) {
	t.Helper()
	if resp.IsError() {
		t.Fatalf("Expected success, got error %v: %s", resp.Err, resp.Text)
	}
	if resp.Text != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, resp.Text)
	}
}

// AssertError checks that a response failed with the given error
func AssertError(t *testing.T, resp models.Response, want error) {
	t.Helper()
	if !resp.IsError() {
		t.Fatalf("Expected error %v, got success: %s", want, resp.Text)
	}
	if !errors.Is(resp.Err, want) {
		t.Errorf("Expected error %v, got %v", want, resp.Err)
	}
}
