// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package confirm implements two-step confirmations for irreversible commands.

A confirmation is Unconfirmed until the user issues the command once, then
Confirmed until the command is issued again (which consumes it) or the TTL
runs out. State lives in memory only (go-cache) and is lost on restart.

	if !confirmer.Check(user, confirm.OpEnd) {
		return warning // asks the user to repeat the command
	}
	// really end
*/
package confirm
