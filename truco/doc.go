// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package truco holds the planning truco state machine.

Every function here takes a registry or session value, applies one
transition in place and returns either the touched value or a *Error.
Nothing is loaded or saved; callers wrap transitions in a storage
read-modify-write (see store.RegistryRepository.Mutate) so a failed
transition is simply discarded.

# Membership

A user takes part in at most one active session, either as its host or as
a joiner:

	reg := models.NewRegistry()
	s, _ := truco.StartSession(reg, "ana", now)
	_, _ = truco.JoinSession(reg, "bia", "ana")
	_, err := truco.JoinSession(reg, "bia", "ana") // ErrAlreadyInASession

# Stories

A story is either collecting votes or being discussed:

	truco.SetStory(s, "login page")   // estimating, no votes
	truco.Estimate(s, "bia", "8")     // records 8
	truco.Pause(s)                    // discussing
	truco.Estimate(s, "bia", "5")     // ErrNotEstimating
	truco.SetStory(s, "")             // same story, votes cleared

# Errors

Errors carry a Code and a user-facing message. Sentinels compare by code:

	if errors.Is(err, truco.ErrNoSuchHost) { ... }

Kind groups codes into AUTH, STATE_CONFLICT, PHASE and VALIDATION.
*/
package truco
