// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/truco"
)

// Provider resolves the caller and other users by name
type Provider interface {
	CurrentUser(ctx context.Context) (models.Identity, bool)
	LookupUser(ctx context.Context, name string) (models.Identity, bool)
}

type userKey struct{}

// WithUser returns a context carrying the logged in user
func WithUser(ctx context.Context, user models.Identity) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by WithUser
func UserFromContext(ctx context.Context) (models.Identity, bool) {
	user, ok := ctx.Value(userKey{}).(models.Identity)
	return user, ok && user != ""
}

// Directory is a Provider over a set of known users. With a fixed list only
// those users may log in; otherwise anyone can, and becomes known on login.
// Names match case-insensitively and keep the casing they were first seen with.
type Directory struct {
	mu    sync.RWMutex
	users map[string]models.Identity
	open  bool
}

// NewDirectory creates a directory restricted to users, or an open one when
// users is empty.
func NewDirectory(users []string) *Directory {
	d := &Directory{
		users: make(map[string]models.Identity, len(users)),
		open:  len(users) == 0,
	}
	for _, u := range users {
		if name := normalize(u); name != "" {
			d.users[strings.ToLower(name)] = models.Identity(name)
		}
	}
	return d
}

// normalize trims whitespace and a leading chat mention marker
func normalize(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}

// Open reports whether unknown users may log in
func (d *Directory) Open() bool {
	return d.open
}

// Login authenticates name and returns a context carrying its identity
func (d *Directory) Login(ctx context.Context, name string) (context.Context, error) {
	name = normalize(name)
	if name == "" {
		return ctx, truco.ErrNotLoggedIn
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := strings.ToLower(name)
	user, ok := d.users[key]
	if !ok {
		if !d.open {
			return ctx, truco.Errorf(truco.CodeNotLoggedIn, "User %s is not allowed to use planning trucos.", name)
		}
		user = models.Identity(name)
		d.users[key] = user
	}
	return WithUser(ctx, user), nil
}

func (d *Directory) CurrentUser(ctx context.Context) (models.Identity, bool) {
	return UserFromContext(ctx)
}

func (d *Directory) LookupUser(ctx context.Context, name string) (models.Identity, bool) {
	name = normalize(name)
	if name == "" {
		return "", false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[strings.ToLower(name)]
	return user, ok
}

// Users lists the known users in name order
func (d *Directory) Users() []models.Identity {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Identity, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
