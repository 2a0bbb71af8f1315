// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package truco

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alnvdl/wcf-truco/models"
)

// FindByHost returns the active session hosted by user, or nil.
func FindByHost(reg *models.Registry, user models.Identity) *models.Session {
	return reg.Sessions[user]
}

// FindByMembership returns the active session listing user as a participant,
// or nil. Join keeps a user in at most one session, so the first match is the
// only one.
func FindByMembership(reg *models.Registry, user models.Identity) *models.Session {
	for _, s := range ActiveSessions(reg) {
		if s.HasParticipant(user) {
			return s
		}
	}
	return nil
}

// SessionsFor returns every active session listing user as a participant.
func SessionsFor(reg *models.Registry, user models.Identity) []*models.Session {
	var out []*models.Session
	for _, s := range ActiveSessions(reg) {
		if s.HasParticipant(user) {
			out = append(out, s)
		}
	}
	return out
}

// ActiveSessions lists active sessions by start date, then host.
func ActiveSessions(reg *models.Registry) []*models.Session {
	out := make([]*models.Session, 0, len(reg.Sessions))
	for _, s := range reg.Sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Host < out[j].Host
	})
	return out
}

// StartSession creates a session hosted by user.
// Fails if user already hosts one or already takes part in another.
func StartSession(reg *models.Registry, user models.Identity, now time.Time) (*models.Session, error) {
	if FindByHost(reg, user) != nil {
		return nil, ErrAlreadyHosting
	}
	if other := FindByMembership(reg, user); other != nil {
		return nil, Errorf(CodeAlreadyInASession,
			"You are already in a planning truco hosted by '%s'. Leave it first.", other.Host)
	}

	session := &models.Session{
		ID:           uuid.NewString(),
		Host:         user,
		Participants: []models.Identity{user},
		Stories:      []*models.Story{},
		StartDate:    now,
	}
	reg.Sessions[user] = session
	return session, nil
}

// JoinSession adds user to the session hosted by host.
func JoinSession(reg *models.Registry, user, host models.Identity) (*models.Session, error) {
	if user == host {
		return nil, ErrSelfJoin
	}
	session := FindByHost(reg, host)
	if session == nil {
		return nil, Errorf(CodeNoSuchHost, "User %s is not currently hosting a planning truco.", host)
	}
	if current := FindByMembership(reg, user); current != nil {
		return nil, Errorf(CodeAlreadyInASession,
			"You are already in a planning truco hosted by '%s'.", current.Host)
	}

	session.Participants = append(session.Participants, user)
	return session, nil
}

// LeaveSession removes user from the session hosted by host. Hosts end their
// sessions instead.
func LeaveSession(reg *models.Registry, user, host models.Identity) (*models.Session, error) {
	if user == host {
		return nil, ErrSelfLeave
	}
	session := FindByHost(reg, host)
	if session == nil {
		return nil, Errorf(CodeNoSuchHost, "User %s is not currently hosting a planning truco.", host)
	}
	for i, p := range session.Participants {
		if p == user {
			session.Participants = append(session.Participants[:i], session.Participants[i+1:]...)
			return session, nil
		}
	}
	return nil, Errorf(CodeNotAParticipant, "You are not part of the planning truco hosted by %s.", host)
}

// EndSession archives the session hosted by host into the history.
func EndSession(reg *models.Registry, host models.Identity, now time.Time) (*models.Session, error) {
	session := FindByHost(reg, host)
	if session == nil {
		return nil, ErrNotHosting
	}

	ended := now
	session.EndDate = &ended
	delete(reg.Sessions, host)
	reg.History = append(reg.History, session)
	return session, nil
}

// RecentHistory returns at most limit ended sessions, most recent last.
func RecentHistory(reg *models.Registry, limit int) []*models.Session {
	if limit <= 0 || len(reg.History) <= limit {
		return reg.History
	}
	return reg.History[len(reg.History)-limit:]
}
