// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnvdl/wcf-truco/handlers"
	"github.com/alnvdl/wcf-truco/middleware"
	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/truco"
)

// AppName may prefix any command line, as in "truco join ana"
const AppName = "truco"

// Route is one command variant
type Route struct {
	Command string
	Usage   string // e.g. "join [who]"
	Help    string
	WithArg bool
	Handler middleware.HandlerFunc
}

// Router dispatches command lines to handlers. A command may have a variant
// without argument and one with a single free-form argument.
type Router struct {
	routes map[string]map[bool]Route
	order  []Route
}

func New() *Router {
	return &Router{routes: map[string]map[bool]Route{}}
}

// Handle registers usage, "cmd" or "cmd [arg]", wrapped with command logging
func (r *Router) Handle(usage, help string, fn middleware.HandlerFunc) {
	command, rest, _ := strings.Cut(usage, " ")
	route := Route{
		Command: command,
		Usage:   usage,
		Help:    help,
		WithArg: rest != "",
		Handler: middleware.WithLogging(fn),
	}
	if r.routes[command] == nil {
		r.routes[command] = map[bool]Route{}
	}
	r.routes[command][route.WithArg] = route
	r.order = append(r.order, route)
}

func NewRouter(h *handlers.SessionHandler) *Router {
	r := New()

	// Session lifecycle
	r.Handle("start", "Start a planning truco hosted by you", h.Start)
	r.Handle("end", "End a planning truco being hosted by you", h.End)
	r.Handle("history", "Show the most recent planning trucos", h.History)

	// Status
	r.Handle("status", "Show the current status of the planning truco session", h.Status)
	r.Handle("session", "Show the full status of the current planning truco session", h.SessionStatus)

	// Membership
	r.Handle("join", "Show the status of your participation in planning truco sessions", h.Status)
	r.Handle("join [who]", "Join a planning truco being hosted by someone ([who])", h.Join)
	r.Handle("leave", "Show planning trucos you're currently participating in", h.LeaveList)
	r.Handle("leave [who]", "Leave a planning truco being hosted by someone ([who])", h.Leave)

	// Stories and estimates
	r.Handle("set", "Reset the current story and set it up for re-estimation", h.Set)
	r.Handle("reset", "Reset the current story and set it up for re-estimation", h.Set)
	r.Handle("set [story]", "Set a [story] for estimation", h.Set)
	r.Handle("estimate [score]", "Estimate the current story as having size [score]; use X to clear your vote, or ? to indicate doubt", h.Estimate)
	r.Handle("pause", "Stop estimating and show the statistics for the current story; set the story again to re-estimate", h.Pause)

	r.Handle("help", "Show this help", func(ctx context.Context, req *models.Request) models.Response {
		return middleware.TextResponse(r.Help())
	})

	return r
}

// Dispatch runs one command line for the user in ctx
func (r *Router) Dispatch(ctx context.Context, line string) models.Response {
	command, arg := ParseLine(line)
	if command == "" {
		return middleware.ErrorResponse(truco.Errorf(truco.CodeUnknownCommand,
			"Type '%s help' to see the available commands.", AppName))
	}

	variants, ok := r.routes[command]
	if !ok {
		return middleware.ErrorResponse(truco.Errorf(truco.CodeUnknownCommand,
			"Unknown command '%s'. Type '%s help' to see the available commands.", command, AppName))
	}

	route, ok := variants[arg != ""]
	if !ok {
		if arg == "" {
			withArg := variants[true]
			return middleware.ErrorResponse(truco.Errorf(truco.CodeMissingArgument,
				"Usage: %s %s", AppName, withArg.Usage))
		}
		return middleware.ErrorResponse(truco.Errorf(truco.CodeUnexpectedArgument,
			"The '%s' command takes no argument.", command))
	}

	return route.Handler(ctx, &models.Request{Command: route.Usage, Arg: arg})
}

// Help lists every command in registration order
func (r *Router) Help() string {
	width := 0
	for _, route := range r.order {
		width = max(width, len(route.Usage))
	}

	lines := []string{"Available commands:"}
	for _, route := range r.order {
		lines = append(lines, fmt.Sprintf("    %s %-*s  %s", AppName, width, route.Usage, route.Help))
	}
	return strings.Join(lines, "\n")
}

// ParseLine splits a line into a lower-cased command and its argument. The
// app name prefix is optional and quotes around the argument are dropped.
func ParseLine(line string) (command, arg string) {
	line = strings.TrimSpace(line)
	command, arg, _ = strings.Cut(line, " ")
	command = strings.ToLower(command)

	if command == AppName {
		command, arg, _ = strings.Cut(strings.TrimSpace(arg), " ")
		command = strings.ToLower(command)
	}

	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 {
		first, last := arg[0], arg[len(arg)-1]
		if (first == '"' || first == '\'') && first == last {
			arg = strings.TrimSpace(arg[1 : len(arg)-1])
		}
	}
	return command, arg
}
