// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the command handlers of the planning truco.

# SessionHandler

SessionHandler implements every command on top of a RegistryStore, an
auth.Provider and the configuration:

	repo := store.NewRegistryRepository(backend)
	h := handlers.NewSessionHandler(repo, dir, cfg, nil)

Each handler takes the caller from the context and returns a
models.Response. Commands that change state run inside RegistryStore.Mutate,
so a failed command leaves the stored registry untouched.

# Commands

	Start         start
	End           end (asks for confirmation first)
	Status        status, join
	SessionStatus session
	Join          join [who]
	Leave         leave [who]
	LeaveList     leave
	Set           set [story], set, reset
	Estimate      estimate [score]
	Pause         pause
	History       history

# Errors

User errors are returned as their message. Storage failures are logged and
reported with a generic message, see middleware.ErrorResponse.
*/
package handlers
