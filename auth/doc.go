// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies who issues a command.

# Identity in Context

The logged in user travels in the request context:

	ctx = auth.WithUser(ctx, "ana")
	user, ok := auth.UserFromContext(ctx)

# Directory

Directory implements Provider. It is either restricted to a configured list
of users (TRUCO_USERS) or open, in which case anyone may log in and becomes
known from then on:

	dir := auth.NewDirectory(cfg.Users)
	ctx, err := dir.Login(ctx, "Ana")
	host, ok := dir.LookupUser(ctx, "@ana") // "Ana", true

Lookups ignore case, surrounding spaces and a leading "@".
*/
package auth
