// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnvdl/wcf-truco/auth"
	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/report"
	"github.com/alnvdl/wcf-truco/store"
	"github.com/alnvdl/wcf-truco/testutil"
	"github.com/alnvdl/wcf-truco/truco"
)

type fixture struct {
	h     *SessionHandler
	dir   *auth.Directory
	clock *testutil.Clock
	repo  *store.RegistryRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	clock := testutil.NewClock()
	repo := testutil.SetupTestStore(t)
	dir := auth.NewDirectory(nil)
	h := NewSessionHandler(repo, dir, testutil.GetTestConfig(), clock.Now)
	return &fixture{h: h, dir: dir, clock: clock, repo: repo}
}

func (f *fixture) as(t *testing.T, user string) context.Context {
	return testutil.LoginAs(t, f.dir, user)
}

func req(arg string) *models.Request {
	return &models.Request{Arg: arg}
}

func (f *fixture) registry(t *testing.T) *models.Registry {
	t.Helper()
	reg, err := f.repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	return reg
}

func TestStart(t *testing.T) {
	f := setup(t)

	resp := f.h.Start(f.as(t, "ana"), req(""))
	testutil.AssertText(t, resp, "Session started!\nTell people in your truco to login and run the 'truco join ana' command.")

	reg := f.registry(t)
	session := reg.Sessions["ana"]
	if session == nil {
		t.Fatal("Expected session to be stored")
	}
	if !session.StartDate.Equal(testutil.Epoch) {
		t.Errorf("Expected start date %v, got %v", testutil.Epoch, session.StartDate)
	}

	resp = f.h.Start(f.as(t, "ana"), req(""))
	testutil.AssertError(t, resp, truco.ErrAlreadyHosting)
	if resp.Text != "You already have a planning truco under your name. Please end it first." {
		t.Errorf("Unexpected message: %s", resp.Text)
	}
}

func TestStart_NotLoggedIn(t *testing.T) {
	f := setup(t)

	testutil.AssertError(t, f.h.Start(context.Background(), req("")), truco.ErrNotLoggedIn)
	if len(f.registry(t).Sessions) != 0 {
		t.Error("Expected nothing to be stored")
	}
}

func TestStatus(t *testing.T) {
	f := setup(t)

	// no sessions at all answers before checking the login
	testutil.AssertText(t, f.h.Status(context.Background(), req("")), report.NoActiveSessions)

	f.h.Start(f.as(t, "ana"), req(""))
	f.clock.Advance(time.Second)
	f.h.Start(f.as(t, "carla"), req(""))

	testutil.AssertError(t, f.h.Status(context.Background(), req("")), truco.ErrNotLoggedIn)

	testutil.AssertText(t, f.h.Status(f.as(t, "bia"), req("")),
		"Planning sessions are being hosted by the following users: 'ana', 'carla'.")

	testutil.AssertText(t, f.h.Join(f.as(t, "bia"), req("ana")), "You joined the planning truco hosted by ana!")
	testutil.AssertText(t, f.h.Status(f.as(t, "bia"), req("")),
		"You are part of the planning truco hosted by 'ana'.\nNo story defined for estimation yet.")
}

func TestJoin(t *testing.T) {
	f := setup(t)
	f.h.Start(f.as(t, "ana"), req(""))
	f.h.Start(f.as(t, "carla"), req(""))
	f.as(t, "dora")

	testCases := []struct {
		name string
		user string
		host string
		want error
	}{
		{"unknown user", "bia", "nobody", truco.ErrUnknownUser},
		{"own session", "ana", "ana", truco.ErrSelfJoin},
		{"known user not hosting", "bia", "dora", truco.ErrNoSuchHost},
		{"host joining another", "carla", "ana", truco.ErrAlreadyInASession},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertError(t, f.h.Join(f.as(t, tc.user), req(tc.host)), tc.want)
		})
	}

	testutil.AssertText(t, f.h.Join(f.as(t, "bia"), req("@ANA")), "You joined the planning truco hosted by ana!")
	resp := f.h.Join(f.as(t, "bia"), req("carla"))
	testutil.AssertError(t, resp, truco.ErrAlreadyInASession)
	if resp.Text != "You are already in a planning truco hosted by 'ana'." {
		t.Errorf("Unexpected message: %s", resp.Text)
	}
}

func TestLeave(t *testing.T) {
	f := setup(t)
	f.h.Start(f.as(t, "ana"), req(""))

	testutil.AssertText(t, f.h.LeaveList(f.as(t, "bia"), req("")), report.NotInAnySession)
	testutil.AssertError(t, f.h.Leave(f.as(t, "bia"), req("ana")), truco.ErrNotAParticipant)
	testutil.AssertError(t, f.h.Leave(f.as(t, "ana"), req("ana")), truco.ErrSelfLeave)

	f.h.Join(f.as(t, "bia"), req("ana"))
	f.clock.Advance(2 * time.Minute)
	testutil.AssertText(t, f.h.LeaveList(f.as(t, "bia"), req("")),
		"planning trucos you are currently a part of:\n    ana: started at 2025-03-14 10:00:00 (2 minutes ago)")

	testutil.AssertText(t, f.h.Leave(f.as(t, "bia"), req("ana")), "You left the planning truco hosted by ana!")
	if f.registry(t).Sessions["ana"].HasParticipant("bia") {
		t.Error("Expected bia to be removed")
	}
}

func TestSetAndEstimate(t *testing.T) {
	f := setup(t)

	testutil.AssertError(t, f.h.Set(f.as(t, "ana"), req("s1")), truco.ErrNotHosting)
	testutil.AssertError(t, f.h.Estimate(f.as(t, "bia"), req("5")), truco.ErrNotInSession)

	f.h.Start(f.as(t, "ana"), req(""))
	f.h.Join(f.as(t, "bia"), req("ana"))

	testutil.AssertError(t, f.h.Set(f.as(t, "ana"), req("")), truco.ErrNoStoryGiven)
	testutil.AssertError(t, f.h.Set(f.as(t, "bia"), req("s1")), truco.ErrNotHosting)
	testutil.AssertError(t, f.h.Estimate(f.as(t, "bia"), req("5")), truco.ErrNoCurrentStory)

	testutil.AssertText(t, f.h.Set(f.as(t, "ana"), req("s1")),
		"The current story is now 's1'. Ask people to estimate it with 'truco estimate [score]'.")

	testutil.AssertText(t, f.h.Estimate(f.as(t, "bia"), req("?")),
		"You expressed doubts about the estimation for story 's1'; run estimate again to change it.")
	testutil.AssertText(t, f.h.Estimate(f.as(t, "bia"), req("X")),
		"You removed your estimate for 's1'; run estimate again to change it.")
	testutil.AssertError(t, f.h.Estimate(f.as(t, "bia"), req("4")), truco.ErrInvalidScore)
	testutil.AssertText(t, f.h.Estimate(f.as(t, "bia"), req("13")),
		"You estimated story 's1' as 13; run estimate again to change it.")

	story := f.registry(t).Sessions["ana"].Current()
	if got := story.Estimate("bia"); got != models.Number(13) {
		t.Errorf("Expected 13, got %s", got)
	}

	// reset keeps the story and clears votes
	testutil.AssertText(t, f.h.Set(f.as(t, "ana"), req("")),
		"The current story is now 's1'. Ask people to estimate it with 'truco estimate [score]'.")
	if votes := f.registry(t).Sessions["ana"].Current().Votes; len(votes) != 0 {
		t.Errorf("Expected no votes after reset, got %v", votes)
	}
}

func TestPause(t *testing.T) {
	f := setup(t)
	f.h.Start(f.as(t, "ana"), req(""))
	f.h.Join(f.as(t, "bia"), req("ana"))

	testutil.AssertError(t, f.h.Pause(f.as(t, "ana"), req("")), truco.ErrNoCurrentStory)
	testutil.AssertError(t, f.h.Pause(f.as(t, "bia"), req("")), truco.ErrNotHosting)

	f.h.Set(f.as(t, "ana"), req("s1"))
	f.h.Estimate(f.as(t, "bia"), req("?"))

	testutil.AssertText(t, f.h.Pause(f.as(t, "ana"), req("")),
		"Estimations on story 's1' have been paused.\n"+
			"People should now discuss estimations for story 's1'.\n"+
			"Estimations:\n    bia: ?\nNo numeric estimations were made.")

	testutil.AssertError(t, f.h.Estimate(f.as(t, "bia"), req("5")), truco.ErrNotEstimating)
}

func TestEnd_RequiresConfirmation(t *testing.T) {
	f := setup(t)

	testutil.AssertError(t, f.h.End(f.as(t, "ana"), req("")), truco.ErrNotHosting)

	f.h.Start(f.as(t, "ana"), req(""))

	resp := f.h.End(f.as(t, "ana"), req(""))
	if resp.IsError() || !strings.Contains(resp.Text, "Warning: ending a session is an irreversible action.") {
		t.Fatalf("Expected a warning, got %+v", resp)
	}
	if f.registry(t).Sessions["ana"] == nil {
		t.Fatal("Expected session to stay active after the first end")
	}

	// another user's end does not consume ana's confirmation
	testutil.AssertError(t, f.h.End(f.as(t, "bia"), req("")), truco.ErrNotHosting)

	resp = f.h.End(f.as(t, "ana"), req(""))
	if resp.IsError() || !strings.HasPrefix(resp.Text, "Session ended!\n") {
		t.Fatalf("Expected the session to end, got %+v", resp)
	}

	reg := f.registry(t)
	if len(reg.Sessions) != 0 || len(reg.History) != 1 {
		t.Fatalf("Expected 0 active and 1 ended session, got %d and %d", len(reg.Sessions), len(reg.History))
	}
	if reg.History[0].EndDate == nil {
		t.Error("Expected end date to be stamped")
	}

	// a new session starts the confirmation over
	f.h.Start(f.as(t, "ana"), req(""))
	resp = f.h.End(f.as(t, "ana"), req(""))
	if !strings.Contains(resp.Text, "Warning:") {
		t.Errorf("Expected a new warning, got %s", resp.Text)
	}
}

func TestHistory(t *testing.T) {
	f := setup(t)

	testutil.AssertText(t, f.h.History(context.Background(), req("")), "There is no planning truco history.")

	reg := models.NewRegistry()
	for _, host := range []models.Identity{"h1", "h2", "h3", "h4", "h5", "h6"} {
		if _, err := truco.StartSession(reg, host, testutil.Epoch); err != nil {
			t.Fatal(err)
		}
		if _, err := truco.EndSession(reg, host, testutil.Epoch); err != nil {
			t.Fatal(err)
		}
	}
	testutil.SeedRegistry(t, f.repo, reg)

	resp := f.h.History(context.Background(), req(""))
	if strings.Contains(resp.Text, "Host: h1\n") {
		t.Error("Expected the oldest session to be cut")
	}
	if strings.Count(resp.Text, "Host: ") != 5 {
		t.Errorf("Expected 5 sessions, got:\n%s", resp.Text)
	}
}

type brokenStore struct{}

func (brokenStore) Load(ctx context.Context) (*models.Registry, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Mutate(ctx context.Context, fn func(reg *models.Registry) error) error {
	return errors.New("connection refused")
}

func TestStorageErrors(t *testing.T) {
	dir := auth.NewDirectory(nil)
	h := NewSessionHandler(brokenStore{}, dir, testutil.GetTestConfig(), nil)
	ctx := testutil.LoginAs(t, dir, "ana")

	handlers := map[string]func(context.Context, *models.Request) models.Response{
		"start":   h.Start,
		"end":     h.End,
		"status":  h.Status,
		"session": h.SessionStatus,
		"leave":   h.LeaveList,
		"set":     h.Set,
		"pause":   h.Pause,
		"history": h.History,
	}
	for name, fn := range handlers {
		t.Run(name, func(t *testing.T) {
			resp := fn(ctx, req("x"))
			if !resp.IsError() || resp.Text != report.StorageError {
				t.Errorf("Expected storage error, got %+v", resp)
			}
		})
	}
}
