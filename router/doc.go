// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router maps command lines to handlers.

# Route Registration

NewRouter registers every planning truco command:

	r := router.NewRouter(sessionHandler)
	resp := r.Dispatch(ctx, "truco estimate 5")

A command may have two variants, one without argument and one with a single
free-form argument. "join" alone shows the status while "join ana" joins the
session hosted by ana.

# Parsing

The leading "truco" is optional and the command name is case-insensitive.
Everything after the command is the argument, with surrounding quotes
removed:

	set "login page"  ->  set, login page

# Errors

Unknown commands, missing arguments and unexpected arguments are validation
errors. Every route is wrapped with middleware.WithLogging.
*/
package router
