// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"

	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/stats"
)

// DefaultTimeFormat is the strftime layout used when none is configured.
const DefaultTimeFormat = "%Y-%m-%d %H:%M:%S"

const indentUnit = "    "

// Renderer turns sessions and stories into chat text
type Renderer struct {
	TimeFormat   string
	HistoryLimit int
	Now          func() time.Time
}

// NewRenderer creates a renderer, falling back to defaults for zero values
func NewRenderer(timeFormat string, historyLimit int, now func() time.Time) *Renderer {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	if historyLimit <= 0 {
		historyLimit = models.DefaultHistoryLimit
	}
	if now == nil {
		now = time.Now
	}
	return &Renderer{TimeFormat: timeFormat, HistoryLimit: historyLimit, Now: now}
}

// Timestamp formats t with the configured layout followed by a relative time,
// e.g. "2025-03-14 10:00:00 (3 minutes ago)".
func (r *Renderer) Timestamp(t time.Time) string {
	return fmt.Sprintf("%s (%s)",
		strftime.Format(r.TimeFormat, t),
		humanize.RelTime(t, r.Now(), "ago", "from now"))
}

// Number formats v with at most two decimals and no trailing zeros
func Number(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Stats renders the min/avg/max/stdev line of a summary
func Stats(s stats.Summary) string {
	return fmt.Sprintf("min/avg/max/stdev: %s/%s/%s/%s",
		Number(s.Min), Number(s.Mean), Number(s.Max), Number(s.Stdev))
}

// StoryEstimation renders the votes of a story and their statistics. With
// withTitle the block is headed by the quoted story name and indented below it.
func (r *Renderer) StoryEstimation(story *models.Story, withTitle bool) string {
	var body []string
	if len(story.Votes) == 0 {
		body = append(body, "No estimations were made.")
	} else {
		body = append(body, "Estimations:")
		for _, v := range story.Votes {
			body = append(body, fmt.Sprintf("%s%s: %s", indentUnit, v.User, v.Estimate))
		}
		numeric := story.NumericEstimates()
		if len(numeric) == 0 {
			body = append(body, "No numeric estimations were made.")
		} else {
			body = append(body, Stats(stats.Summarize(numeric)))
		}
	}

	if !withTitle {
		return strings.Join(body, "\n")
	}
	return fmt.Sprintf("'%s':\n%s", story.Name, indent(strings.Join(body, "\n"), 1))
}

// Session renders the full details of a session, every line prefixed with
// level indentation units.
func (r *Renderer) Session(session *models.Session, level int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Host: %s\n", session.Host)
	fmt.Fprintf(&b, "started at %s\n", r.Timestamp(session.StartDate))
	if session.EndDate != nil {
		fmt.Fprintf(&b, "ended at %s\n", r.Timestamp(*session.EndDate))
	}
	fmt.Fprintf(&b, "Participants: %s\n", joinIdentities(session.Participants))

	if len(session.Stories) == 0 {
		b.WriteString("No stories were estimated.")
	} else {
		b.WriteString("Stories:")
		for _, story := range session.Stories {
			b.WriteString("\n")
			b.WriteString(r.StoryEstimation(story, true))
		}
	}

	return indent(b.String(), level)
}

// SessionStatus renders where the current story of a session stands
func (r *Renderer) SessionStatus(session *models.Session) string {
	story := session.Current()
	if story == nil {
		return "No story defined for estimation yet."
	}

	if !story.Estimating {
		return fmt.Sprintf("People should now discuss estimations for story '%s'.\n%s",
			story.Name, r.StoryEstimation(story, false))
	}

	estimated := story.Voters()
	var waiting []models.Identity
	for _, p := range session.Participants {
		if !story.HasVoted(p) {
			waiting = append(waiting, p)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "People are now estimating '%s'\n", story.Name)
	fmt.Fprintf(&b, "%sEstimated: %s\n", indentUnit, orDash(estimated))
	fmt.Fprintf(&b, "%sWaiting for: %s", indentUnit, orDash(waiting))
	if len(waiting) == 0 {
		b.WriteString("\nReady to discuss!")
	}
	return b.String()
}

// History renders the most recent ended sessions, oldest first
func (r *Renderer) History(history []*models.Session) string {
	if len(history) == 0 {
		return "There is no planning truco history."
	}
	if len(history) > r.HistoryLimit {
		history = history[len(history)-r.HistoryLimit:]
	}

	blocks := make([]string, 0, len(history))
	for _, s := range history {
		blocks = append(blocks, r.Session(s, 1))
	}
	return fmt.Sprintf("Previous planning trucos (at most %d are shown):\n%s",
		r.HistoryLimit, strings.Join(blocks, "\n\n"))
}

// LeaveList renders the sessions a user could leave
func (r *Renderer) LeaveList(sessions []*models.Session) string {
	if len(sessions) == 0 {
		return NotInAnySession
	}
	lines := []string{"planning trucos you are currently a part of:"}
	for _, s := range sessions {
		lines = append(lines, fmt.Sprintf("%s%s: started at %s", indentUnit, s.Host, r.Timestamp(s.StartDate)))
	}
	return strings.Join(lines, "\n")
}

// Hosts lists the hosts of the given sessions
func Hosts(sessions []*models.Session) string {
	quoted := make([]string, 0, len(sessions))
	for _, s := range sessions {
		quoted = append(quoted, "'"+string(s.Host)+"'")
	}
	return fmt.Sprintf("Planning sessions are being hosted by the following users: %s.",
		strings.Join(quoted, ", "))
}

func joinIdentities(ids []models.Identity) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func orDash(ids []models.Identity) string {
	if len(ids) == 0 {
		return "-"
	}
	return joinIdentities(ids)
}

func indent(s string, level int) string {
	if level <= 0 {
		return s
	}
	prefix := strings.Repeat(indentUnit, level)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
