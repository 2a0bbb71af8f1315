// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package truco

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Kind(t *testing.T) {
	tests := map[Code]Kind{
		CodeNotLoggedIn:        KindAuth,
		CodeUnknownUser:        KindAuth,
		CodeAlreadyHosting:     KindStateConflict,
		CodeNotHosting:         KindStateConflict,
		CodeSelfJoin:           KindStateConflict,
		CodeSelfLeave:          KindStateConflict,
		CodeNoSuchHost:         KindStateConflict,
		CodeAlreadyInASession:  KindStateConflict,
		CodeNotAParticipant:    KindStateConflict,
		CodeNotInSession:       KindStateConflict,
		CodeNotEstimating:      KindPhase,
		CodeNoCurrentStory:     KindPhase,
		CodeInvalidScore:       KindValidation,
		CodeNoStoryGiven:       KindValidation,
		CodeMissingArgument:    KindValidation,
		CodeUnexpectedArgument: KindValidation,
		CodeUnknownCommand:     KindValidation,
	}
	for code, kind := range tests {
		assert.Equal(t, kind, code.Kind(), code)
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Errorf(CodeNotLoggedIn, "User %s is not allowed.", "zoe")
	assert.Equal(t, "User zoe is not allowed.", err.Error())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.NotErrorIs(t, err, ErrUnknownUser)

	wrapped := fmt.Errorf("join: %w", ErrSelfJoin)
	assert.ErrorIs(t, wrapped, ErrSelfJoin)

	var terr *Error
	assert.True(t, errors.As(wrapped, &terr))
	assert.Equal(t, KindStateConflict, terr.Kind())

	assert.NotErrorIs(t, errors.New("You are not logged in."), ErrNotLoggedIn)
}
