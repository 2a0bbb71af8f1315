// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alnvdl/wcf-truco/models"
)

var registryKeys = []string{models.KeySessions, models.KeyHistory}

// RegistryRepository persists a models.Registry as two JSON documents:
// the active sessions and the history.
type RegistryRepository struct {
	store Store
}

func NewRegistryRepository(s Store) *RegistryRepository {
	return &RegistryRepository{store: s}
}

// Load returns the stored registry, or an empty one if nothing was saved yet
func (r *RegistryRepository) Load(ctx context.Context) (*models.Registry, error) {
	cur := make(map[string][]byte, len(registryKeys))
	for _, k := range registryKeys {
		b, err := r.store.Get(ctx, k)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", k, err)
		}
		cur[k] = b
	}
	return decodeRegistry(cur)
}

// Mutate applies fn to the latest registry and saves the result atomically.
// If fn fails nothing is written and its error is returned unchanged.
func (r *RegistryRepository) Mutate(ctx context.Context, fn func(reg *models.Registry) error) error {
	return r.store.Update(ctx, registryKeys, func(cur map[string][]byte) (map[string][]byte, error) {
		reg, err := decodeRegistry(cur)
		if err != nil {
			return nil, err
		}
		if err := fn(reg); err != nil {
			return nil, err
		}

		encoded, err := encodeRegistry(reg)
		if err != nil {
			return nil, err
		}
		// only rewrite the halves that changed
		for k, v := range encoded {
			if bytes.Equal(cur[k], v) {
				delete(encoded, k)
			}
		}
		return encoded, nil
	})
}

func decodeRegistry(cur map[string][]byte) (*models.Registry, error) {
	reg := models.NewRegistry()
	if b, ok := cur[models.KeySessions]; ok {
		if err := json.Unmarshal(b, &reg.Sessions); err != nil {
			return nil, fmt.Errorf("failed to decode sessions: %w", err)
		}
	}
	if b, ok := cur[models.KeyHistory]; ok {
		if err := json.Unmarshal(b, &reg.History); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
	}
	if reg.Sessions == nil {
		reg.Sessions = map[models.Identity]*models.Session{}
	}
	if reg.History == nil {
		reg.History = []*models.Session{}
	}
	return reg, nil
}

func encodeRegistry(reg *models.Registry) (map[string][]byte, error) {
	sessions, err := json.Marshal(reg.Sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sessions: %w", err)
	}
	history, err := json.Marshal(reg.History)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return map[string][]byte{
		models.KeySessions: sessions,
		models.KeyHistory:  history,
	}, nil
}
