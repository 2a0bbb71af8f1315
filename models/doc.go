// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and command types for planning trucos.

# Domain Types

  - Identity: opaque user token
  - Estimate: tagged value, one of Number(n), Doubt or Absent
  - Vote: a participant's estimate for a story
  - Story: an estimation round (votes in first-vote order + estimating flag)
  - Session: a hosted truco with participants and stories
  - Registry: active sessions keyed by host plus ended-session history

# Command Types

  - Request: command name, single free-text argument and request ID
  - Response: text report; Err is set for error reports

# Estimates

The accepted numeric values are:

	0, 1, 2, 3, 5, 8, 13, 20, 40, 100

An Estimate serializes as a JSON integer for numbers and as "?" for Doubt.
Absent is never stored: a participant without a vote has no entry.

	e := models.Number(8)
	n, ok := e.Value() // 8, true
	models.Doubt.String() // "?"

# Storage Keys

	KeySessions = "sessions"
	KeyHistory  = "history"
*/
package models
