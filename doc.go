// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the planning truco console.

A planning truco is a planning poker session: a host opens a session, people
join it, the host sets stories for estimation, everyone votes, and the host
pauses voting to discuss the statistics before moving on. Ended sessions are
kept in a short history.

# Running

Commands are read from standard input, one per line, prefixed by the user
issuing them:

	TRUCO_STORE=memory go run .
	ana start
	bia join ana

Or with flags:

	go run . -t sqlite -d "file:truco.db" -users ana,bia

# Configuration

Settings come from the environment (optionally a .env file) and may be
overridden by flags:

  - TRUCO_STORE (-t): memory, sqlite, postgres or redis (default: sqlite)
  - DATABASE_URL (-d): SQLite or PostgreSQL connection string
  - REDIS_URL (-redis): Redis URL, required for the redis store
  - TRUCO_USERS (-users): comma-separated users allowed to log in; anyone if empty
  - TRUCO_HISTORY_LIMIT (-history): ended sessions shown by history (default: 5)
  - TRUCO_CONFIRM_TTL (-confirm-ttl): how long an end confirmation stays armed
  - LOG_FILE (-log-file) and LOG_LEVEL (-log-level)

# Architecture

  - truco: session registry and story state machine
  - stats: min, mean, max and standard deviation of estimates
  - report: chat text rendering
  - handlers: one handler per command, persisting through store
  - router: command parsing and dispatch
  - console: line-oriented front end
  - store, db: atomic key-value storage (memory, Redis, SQLite, PostgreSQL)
  - confirm: two-step confirmation for irreversible commands
  - auth: user identity
  - cliparse, logging: configuration and structured logs

See package documentation for each component.
*/
package main
