// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package truco

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/stats"
)

func newSession(t *testing.T, participants ...models.Identity) (*models.Registry, *models.Session) {
	t.Helper()
	reg := models.NewRegistry()
	session, err := StartSession(reg, "A", t0)
	require.NoError(t, err)
	for _, p := range participants {
		_, err := JoinSession(reg, p, "A")
		require.NoError(t, err)
	}
	return reg, session
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.Estimate
		wantErr bool
	}{
		{raw: "5", want: models.Number(5)},
		{raw: "0", want: models.Number(0)},
		{raw: "100", want: models.Number(100)},
		{raw: " 8 ", want: models.Number(8)},
		{raw: "?", want: models.Doubt},
		{raw: "x", want: models.Absent},
		{raw: "X", want: models.Absent},
		{raw: "5.5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "4", wantErr: true},
		{raw: "101", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseScore(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidScore)
				var terr *Error
				require.True(t, errors.As(err, &terr))
				assert.Equal(t, KindValidation, terr.Kind())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetStory(t *testing.T) {
	_, session := newSession(t, "B")

	_, err := SetStory(session, "")
	assert.ErrorIs(t, err, ErrNoStoryGiven)
	assert.Nil(t, session.CurrentStory)

	story, err := SetStory(session, "s1")
	require.NoError(t, err)
	assert.True(t, story.Estimating)
	assert.Empty(t, story.Votes)
	require.NotNil(t, session.CurrentStory)
	assert.Equal(t, "s1", *session.CurrentStory)

	_, err = SetStory(session, "s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", session.Current().Name)

	names := func() []string {
		var out []string
		for _, st := range session.Stories {
			out = append(out, st.Name)
		}
		return out
	}
	assert.Equal(t, []string{"s1", "s2"}, names())

	// re-setting an older story keeps its place
	_, err = SetStory(session, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, names())
	assert.Equal(t, "s1", session.Current().Name)
}

func TestSetStory_ResetClearsVotes(t *testing.T) {
	_, session := newSession(t, "B")
	_, err := SetStory(session, "s1")
	require.NoError(t, err)
	_, err = Estimate(session, "B", "5")
	require.NoError(t, err)
	_, err = Pause(session)
	require.NoError(t, err)

	story, err := SetStory(session, "")
	require.NoError(t, err)

	assert.Equal(t, "s1", story.Name)
	assert.True(t, story.Estimating)
	assert.Empty(t, story.Votes)
	assert.Len(t, session.Stories, 1)
}

func TestPause(t *testing.T) {
	_, session := newSession(t)

	_, err := Pause(session)
	assert.ErrorIs(t, err, ErrNoCurrentStory)

	_, err = SetStory(session, "s1")
	require.NoError(t, err)

	story, err := Pause(session)
	require.NoError(t, err)
	assert.False(t, story.Estimating)

	// pausing twice is harmless
	story, err = Pause(session)
	require.NoError(t, err)
	assert.False(t, story.Estimating)
}

func TestEstimate_Phases(t *testing.T) {
	_, session := newSession(t, "B")

	_, err := Estimate(session, "B", "5")
	require.ErrorIs(t, err, ErrNoCurrentStory)
	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, KindPhase, terr.Kind())

	_, err = SetStory(session, "s1")
	require.NoError(t, err)
	_, err = Pause(session)
	require.NoError(t, err)

	_, err = Estimate(session, "B", "5")
	require.ErrorIs(t, err, ErrNotEstimating)
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, KindPhase, terr.Kind())

	// the phase check wins over score validation
	_, err = Estimate(session, "B", "banana")
	assert.ErrorIs(t, err, ErrNotEstimating)
	assert.Empty(t, session.Current().Votes)

	_, err = SetStory(session, "s1")
	require.NoError(t, err)
	_, err = Estimate(session, "B", "5")
	assert.NoError(t, err)
}

func TestEstimate_DoubtThenClear(t *testing.T) {
	_, session := newSession(t, "B")
	_, err := SetStory(session, "s1")
	require.NoError(t, err)

	e, err := Estimate(session, "B", "?")
	require.NoError(t, err)
	assert.Equal(t, models.Doubt, e)
	assert.True(t, session.Current().HasVoted("B"))
	assert.Empty(t, session.Current().NumericEstimates())

	e, err = Estimate(session, "B", "x")
	require.NoError(t, err)
	assert.Equal(t, models.Absent, e)
	assert.False(t, session.Current().HasVoted("B"))
	assert.Empty(t, session.Current().Votes)
}

func TestEstimate_LastWriteWinsInFirstVoteOrder(t *testing.T) {
	_, session := newSession(t, "B", "C")
	_, err := SetStory(session, "s1")
	require.NoError(t, err)

	for _, step := range []struct {
		user models.Identity
		raw  string
	}{
		{"B", "3"},
		{"C", "8"},
		{"B", "13"},
	} {
		_, err := Estimate(session, step.user, step.raw)
		require.NoError(t, err)
	}

	story := session.Current()
	assert.Equal(t, []models.Identity{"B", "C"}, story.Voters())
	assert.Equal(t, models.Number(13), story.Estimate("B"))

	_, err = Estimate(session, "C", "20")
	require.NoError(t, err)
	_, err = Estimate(session, "B", "1.5")
	require.ErrorIs(t, err, ErrInvalidScore)
	assert.Equal(t, models.Number(13), story.Estimate("B"), "a rejected score leaves the old vote")
}

// A hosts, B joins, both vote, A pauses and ends.
func TestScenario(t *testing.T) {
	reg := models.NewRegistry()
	session, err := StartSession(reg, "A", t0)
	require.NoError(t, err)
	_, err = JoinSession(reg, "B", "A")
	require.NoError(t, err)

	_, err = SetStory(session, "s1")
	require.NoError(t, err)
	_, err = Estimate(FindByMembership(reg, "A"), "A", "5")
	require.NoError(t, err)
	_, err = Estimate(FindByMembership(reg, "B"), "B", "8")
	require.NoError(t, err)

	story, err := Pause(session)
	require.NoError(t, err)
	assert.False(t, story.Estimating)

	s := stats.Summarize(story.NumericEstimates())
	assert.Equal(t, stats.Summary{Count: 2, Min: 5, Mean: 6.5, Max: 8, Stdev: 1.5}, s)

	archived, err := EndSession(reg, "A", t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, reg.Sessions)
	require.Len(t, reg.History, 1)
	assert.Equal(t, []models.Identity{"A", "B"}, archived.Participants)
	assert.Equal(t, models.Number(5), archived.Story("s1").Estimate("A"))
	assert.Equal(t, models.Number(8), archived.Story("s1").Estimate("B"))
}
