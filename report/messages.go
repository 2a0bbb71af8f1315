// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"

	"github.com/alnvdl/wcf-truco/models"
)

// Informational replies that are not errors
const (
	NoActiveSessions = "There are currently no planning trucos being hosted."
	NotInAnySession  = "You are not currently part of any planning trucos."
	StorageError     = "Something went wrong while saving the planning truco, please try again."
)

func Started(host models.Identity) string {
	return "Session started!\n" +
		fmt.Sprintf("Tell people in your truco to login and run the 'truco join %s' command.", host)
}

func Joined(host models.Identity) string {
	return fmt.Sprintf("You joined the planning truco hosted by %s!", host)
}

func Left(host models.Identity) string {
	return fmt.Sprintf("You left the planning truco hosted by %s!", host)
}

func StorySet(name string) string {
	return fmt.Sprintf("The current story is now '%s'. Ask people to estimate it with 'truco estimate [score]'.", name)
}

// Estimated describes the outcome of an estimate command
func Estimated(story string, e models.Estimate) string {
	var what string
	switch e.Kind() {
	case models.EstimateDoubt:
		what = fmt.Sprintf("You expressed doubts about the estimation for story '%s'", story)
	case models.EstimateAbsent:
		what = fmt.Sprintf("You removed your estimate for '%s'", story)
	default:
		what = fmt.Sprintf("You estimated story '%s' as %s", story, e)
	}
	return what + "; run estimate again to change it."
}

// PartOf heads the status of a member of the session hosted by host
func PartOf(host models.Identity) string {
	return fmt.Sprintf("You are part of the planning truco hosted by '%s'.", host)
}

func (r *Renderer) Status(session *models.Session) string {
	return PartOf(session.Host) + "\n" + r.SessionStatus(session)
}

func (r *Renderer) FullStatus(session *models.Session) string {
	return PartOf(session.Host) + "\n" + r.Session(session, 0)
}

func (r *Renderer) Paused(session *models.Session) string {
	return fmt.Sprintf("Estimations on story '%s' have been paused.\n%s",
		*session.CurrentStory, r.SessionStatus(session))
}

// EndWarning asks the host to repeat end to confirm
func (r *Renderer) EndWarning(session *models.Session) string {
	return "After you end a session, it will be added to the history.\n" +
		"Warning: ending a session is an irreversible action.\n" +
		"To really end this session, please confirm the details below and run the 'truco end' command again:\n" +
		r.Session(session, 1)
}

func (r *Renderer) Ended(session *models.Session) string {
	return "Session ended!\n" +
		"This is the session as it has been logged to the history:\n" +
		r.Session(session, 1)
}
