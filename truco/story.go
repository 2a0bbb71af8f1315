// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package truco

import (
	"strconv"
	"strings"

	"github.com/alnvdl/wcf-truco/models"
)

// SetStory opens name for estimation with no votes and makes it current.
// An empty name resets the current story the same way.
func SetStory(session *models.Session, name string) (*models.Story, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if session.CurrentStory == nil {
			return nil, ErrNoStoryGiven
		}
		name = *session.CurrentStory
	}

	fresh := models.NewStory(name)
	replaced := false
	for i, st := range session.Stories {
		if st.Name == name {
			session.Stories[i] = fresh
			replaced = true
			break
		}
	}
	if !replaced {
		session.Stories = append(session.Stories, fresh)
	}
	session.CurrentStory = &name
	return fresh, nil
}

// Pause closes the estimation window of the current story. Pausing a paused
// story is a no-op.
func Pause(session *models.Session) (*models.Story, error) {
	story := session.Current()
	if story == nil {
		return nil, ErrNoCurrentStory
	}
	story.Estimating = false
	return story, nil
}

// Estimate records user's raw score on the current story and returns the
// stored estimate. Absent means the vote was cleared.
func Estimate(session *models.Session, user models.Identity, raw string) (models.Estimate, error) {
	story := session.Current()
	if story == nil {
		return models.Absent, ErrNoCurrentStory
	}
	if !story.CanAcceptVotes() {
		return models.Absent, ErrNotEstimating
	}

	e, err := ParseScore(raw)
	if err != nil {
		return models.Absent, err
	}
	story.SetEstimate(user, e)
	return e, nil
}

// ParseScore converts a raw score: "?" is Doubt, "x" or "X" is Absent
// (clear), anything else must be an integer on the scale.
func ParseScore(raw string) (models.Estimate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "?" {
		return models.Doubt, nil
	}
	if strings.EqualFold(raw, "x") {
		return models.Absent, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || !models.OnScale(n) {
		return models.Absent, ErrInvalidScore
	}
	return models.Number(n), nil
}
