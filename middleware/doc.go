// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides command middleware and response helpers.

# Command Logging

Wrap handlers with command logging:

	r.Handle("status", "...", middleware.WithLogging(h.Status))

Logs command start (request_id, command, user) and completion
(duration_ms, error). Requests without an ID get a UUID.

# Responses

	middleware.TextResponse("Session started!")
	middleware.ErrorResponse(err)

ErrorResponse shows the message of a *truco.Error verbatim. Other errors
are logged with slog and the user sees a generic storage error.
*/
package middleware
