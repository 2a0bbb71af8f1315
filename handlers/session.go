// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alnvdl/wcf-truco/auth"
	"github.com/alnvdl/wcf-truco/cliparse"
	"github.com/alnvdl/wcf-truco/confirm"
	"github.com/alnvdl/wcf-truco/middleware"
	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/report"
	"github.com/alnvdl/wcf-truco/truco"
)

// RegistryStore loads and atomically updates the registry
type RegistryStore interface {
	Load(ctx context.Context) (*models.Registry, error)
	Mutate(ctx context.Context, fn func(reg *models.Registry) error) error
}

// SessionHandler implements the planning truco commands
type SessionHandler struct {
	repo     RegistryStore
	users    auth.Provider
	confirm  *confirm.Confirmer
	renderer *report.Renderer
	now      func() time.Time
}

// NewSessionHandler creates a handler. now may be nil to use the wall clock.
func NewSessionHandler(repo RegistryStore, users auth.Provider, cfg cliparse.Config, now func() time.Time) *SessionHandler {
	if now == nil {
		now = time.Now
	}
	return &SessionHandler{
		repo:     repo,
		users:    users,
		confirm:  confirm.New(cfg.ConfirmTTL),
		renderer: report.NewRenderer(cfg.TimeFormat, cfg.HistoryLimit, now),
		now:      now,
	}
}

func (h *SessionHandler) currentUser(ctx context.Context) (models.Identity, error) {
	user, ok := h.users.CurrentUser(ctx)
	if !ok {
		return "", truco.ErrNotLoggedIn
	}
	return user, nil
}

func (h *SessionHandler) lookupUser(ctx context.Context, name string) (models.Identity, error) {
	user, ok := h.users.LookupUser(ctx, name)
	if !ok {
		return "", truco.ErrUnknownUser
	}
	return user, nil
}

// Start opens a session hosted by the caller
func (h *SessionHandler) Start(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	var session *models.Session
	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		session, err = truco.StartSession(reg, user, h.now())
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	h.confirm.Reset(user, confirm.OpEnd)
	slog.Info("session started", "session_id", session.ID, "host", user)
	return middleware.TextResponse(report.Started(user))
}

// End archives the caller's session. The first call only shows what would be
// archived; the second one within the confirmation TTL ends it.
func (h *SessionHandler) End(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	reg, err := h.repo.Load(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}
	session := truco.FindByHost(reg, user)
	if session == nil {
		return middleware.ErrorResponse(truco.ErrNotHosting)
	}

	if !h.confirm.Check(user, confirm.OpEnd) {
		return middleware.TextResponse(h.renderer.EndWarning(session))
	}

	var archived *models.Session
	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		archived, err = truco.EndSession(reg, user, h.now())
		return err
	})
	if err != nil {
		var terr *truco.Error
		if !errors.As(err, &terr) {
			// storage failed; let the next attempt go straight through
			h.confirm.Arm(user, confirm.OpEnd)
		}
		return middleware.ErrorResponse(err)
	}

	slog.Info("session ended", "session_id", archived.ID, "host", user, "stories", len(archived.Stories))
	return middleware.TextResponse(h.renderer.Ended(archived))
}

// Status shows the caller's current story, or who is hosting
func (h *SessionHandler) Status(ctx context.Context, req *models.Request) models.Response {
	reg, err := h.repo.Load(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}
	if len(reg.Sessions) == 0 {
		return middleware.TextResponse(report.NoActiveSessions)
	}

	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	if session := truco.FindByMembership(reg, user); session != nil {
		return middleware.TextResponse(h.renderer.Status(session))
	}
	return middleware.TextResponse(report.Hosts(truco.ActiveSessions(reg)))
}

// SessionStatus shows every story of the caller's session
func (h *SessionHandler) SessionStatus(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	reg, err := h.repo.Load(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	session := truco.FindByMembership(reg, user)
	if session == nil {
		return middleware.TextResponse(report.NotInAnySession)
	}
	return middleware.TextResponse(h.renderer.FullStatus(session))
}

// Join adds the caller to the session hosted by req.Arg
func (h *SessionHandler) Join(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}
	host, err := h.lookupUser(ctx, req.Arg)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		_, err := truco.JoinSession(reg, user, host)
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	slog.Info("participant joined", "host", host, "user", user)
	return middleware.TextResponse(report.Joined(host))
}

// Leave removes the caller from the session hosted by req.Arg
func (h *SessionHandler) Leave(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}
	host, err := h.lookupUser(ctx, req.Arg)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		_, err := truco.LeaveSession(reg, user, host)
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	slog.Info("participant left", "host", host, "user", user)
	return middleware.TextResponse(report.Left(host))
}

// LeaveList shows the sessions the caller takes part in
func (h *SessionHandler) LeaveList(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	reg, err := h.repo.Load(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}
	return middleware.TextResponse(h.renderer.LeaveList(truco.SessionsFor(reg, user)))
}

// Set opens req.Arg for estimation, or resets the current story when no
// argument is given
func (h *SessionHandler) Set(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	var story *models.Story
	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		session := truco.FindByHost(reg, user)
		if session == nil {
			return truco.ErrNotHosting
		}
		story, err = truco.SetStory(session, req.Arg)
		return err
	})
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	return middleware.TextResponse(report.StorySet(story.Name))
}

// Estimate records the caller's score for the current story
func (h *SessionHandler) Estimate(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	var storyName string
	var estimate models.Estimate
	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		session := truco.FindByMembership(reg, user)
		if session == nil {
			return truco.ErrNotInSession
		}
		estimate, err = truco.Estimate(session, user, req.Arg)
		if err != nil {
			return err
		}
		storyName = *session.CurrentStory
		return nil
	})
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	return middleware.TextResponse(report.Estimated(storyName, estimate))
}

// Pause closes voting on the current story and shows the results
func (h *SessionHandler) Pause(ctx context.Context, req *models.Request) models.Response {
	user, err := h.currentUser(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	var text string
	err = h.repo.Mutate(ctx, func(reg *models.Registry) error {
		session := truco.FindByHost(reg, user)
		if session == nil {
			return truco.ErrNotHosting
		}
		if _, err := truco.Pause(session); err != nil {
			return err
		}
		text = h.renderer.Paused(session)
		return nil
	})
	if err != nil {
		return middleware.ErrorResponse(err)
	}

	return middleware.TextResponse(text)
}

// History shows the most recently ended sessions
func (h *SessionHandler) History(ctx context.Context, req *models.Request) models.Response {
	reg, err := h.repo.Load(ctx)
	if err != nil {
		return middleware.ErrorResponse(err)
	}
	return middleware.TextResponse(h.renderer.History(reg.History))
}
