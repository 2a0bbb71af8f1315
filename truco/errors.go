// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package truco

import "fmt"

// Kind groups error codes into the user-facing taxonomy.
type Kind string

const (
	KindAuth          Kind = "AUTH"
	KindStateConflict Kind = "STATE_CONFLICT"
	KindPhase         Kind = "PHASE"
	KindValidation    Kind = "VALIDATION"
)

// Code is a machine-readable error code.
type Code string

const (
	// Auth errors
	CodeNotLoggedIn Code = "NOT_LOGGED_IN"
	CodeUnknownUser Code = "UNKNOWN_USER"

	// Membership and ownership errors
	CodeAlreadyHosting    Code = "ALREADY_HOSTING"
	CodeNotHosting        Code = "NOT_HOSTING"
	CodeSelfJoin          Code = "SELF_JOIN"
	CodeSelfLeave         Code = "SELF_LEAVE"
	CodeNoSuchHost        Code = "NO_SUCH_HOST"
	CodeAlreadyInASession Code = "ALREADY_IN_A_SESSION"
	CodeNotAParticipant   Code = "NOT_A_PARTICIPANT"
	CodeNotInSession      Code = "NOT_IN_SESSION"

	// Story phase errors
	CodeNotEstimating  Code = "NOT_ESTIMATING"
	CodeNoCurrentStory Code = "NO_CURRENT_STORY"

	// Input errors
	CodeInvalidScore       Code = "INVALID_SCORE"
	CodeNoStoryGiven       Code = "NO_STORY_GIVEN"
	CodeMissingArgument    Code = "MISSING_ARGUMENT"
	CodeUnexpectedArgument Code = "UNEXPECTED_ARGUMENT"
	CodeUnknownCommand     Code = "UNKNOWN_COMMAND"
)

// Kind returns the taxonomy bucket of the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeNotLoggedIn, CodeUnknownUser:
		return KindAuth
	case CodeNotEstimating, CodeNoCurrentStory:
		return KindPhase
	case CodeInvalidScore, CodeNoStoryGiven, CodeMissingArgument, CodeUnexpectedArgument, CodeUnknownCommand:
		return KindValidation
	default:
		return KindStateConflict
	}
}

// Error is a recoverable, user-facing failure of a command.
type Error struct {
	Code    Code
	Message string // shown to the user as is
}

func (e *Error) Error() string {
	return e.Message
}

// Kind returns the taxonomy bucket of the error.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Errorf creates an error with a formatted user message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is; matching is by code only.
var (
	ErrNotLoggedIn       = &Error{Code: CodeNotLoggedIn, Message: "You are not logged in."}
	ErrUnknownUser       = &Error{Code: CodeUnknownUser, Message: "That user does not exist."}
	ErrAlreadyHosting    = &Error{Code: CodeAlreadyHosting, Message: "You already have a planning truco under your name. Please end it first."}
	ErrNotHosting        = &Error{Code: CodeNotHosting, Message: "You are not currently hosting a planning truco."}
	ErrSelfJoin          = &Error{Code: CodeSelfJoin, Message: "You don't need to join your own planning truco."}
	ErrSelfLeave         = &Error{Code: CodeSelfLeave, Message: "You cannot leave your own planning truco, end it instead."}
	ErrNoSuchHost        = &Error{Code: CodeNoSuchHost, Message: "That user is not currently hosting a planning truco."}
	ErrAlreadyInASession = &Error{Code: CodeAlreadyInASession, Message: "You are already in a planning truco."}
	ErrNotAParticipant   = &Error{Code: CodeNotAParticipant, Message: "You are not part of that planning truco."}
	ErrNotInSession      = &Error{Code: CodeNotInSession, Message: "You must be a part of a planning truco to estimate a story."}
	ErrNotEstimating     = &Error{Code: CodeNotEstimating, Message: "Now is not the time to estimate the story, behave yourself!"}
	ErrNoCurrentStory    = &Error{Code: CodeNoCurrentStory, Message: "No stories are being estimated at the moment in this session."}
	ErrNoStoryGiven      = &Error{Code: CodeNoStoryGiven, Message: "You must define a story to be estimated."}
	ErrInvalidScore      = &Error{Code: CodeInvalidScore, Message: "Invalid score. The score must be:\n" +
		"- a valid positive integer number (0, 1, 2, 3, 5, 8, 13, 20, 40, 100);\n" +
		"- a '?' to indicate doubt;\n" +
		"- an 'X' to clear your vote."}
)
