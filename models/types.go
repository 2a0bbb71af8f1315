package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Storage keys for the registry halves
const (
	KeySessions = "sessions"
	KeyHistory  = "history"
)

// DefaultHistoryLimit is how many ended sessions the history view renders.
const DefaultHistoryLimit = 5

// Scale lists the accepted numeric estimates, in ascending order.
var Scale = []int{0, 1, 2, 3, 5, 8, 13, 20, 40, 100}

// OnScale reports whether n is an accepted numeric estimate.
func OnScale(n int) bool {
	for _, v := range Scale {
		if v == n {
			return true
		}
	}
	return false
}

// Identity is an opaque user token. Two identities are the same user iff they
// are equal.
type Identity string

// EstimateKind tags the three possible estimate values.
type EstimateKind int

const (
	EstimateAbsent EstimateKind = iota
	EstimateNumber
	EstimateDoubt
)

// Estimate is a participant's vote for a story: a number from Scale, Doubt,
// or Absent. The zero value is Absent.
type Estimate struct {
	kind  EstimateKind
	value int
}

// Doubt is the "?" estimate.
var Doubt = Estimate{kind: EstimateDoubt}

// Absent is the estimate of someone who has not voted.
var Absent = Estimate{}

// Number returns a numeric estimate. It does not check the scale.
func Number(n int) Estimate {
	return Estimate{kind: EstimateNumber, value: n}
}

func (e Estimate) Kind() EstimateKind { return e.kind }

// Value returns the numeric value and true for numeric estimates.
func (e Estimate) Value() (int, bool) {
	if e.kind != EstimateNumber {
		return 0, false
	}
	return e.value, true
}

func (e Estimate) String() string {
	switch e.kind {
	case EstimateNumber:
		return strconv.Itoa(e.value)
	case EstimateDoubt:
		return "?"
	default:
		return "-"
	}
}

func (e Estimate) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case EstimateNumber:
		return json.Marshal(e.value)
	case EstimateDoubt:
		return json.Marshal("?")
	default:
		return []byte("null"), nil
	}
}

func (e *Estimate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = Absent
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "?" {
			return fmt.Errorf("invalid estimate %q", s)
		}
		*e = Doubt
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid estimate %s: %w", data, err)
	}
	*e = Number(n)
	return nil
}

// Vote is one participant's entry in a story's estimations.
type Vote struct {
	User     Identity `json:"user"`
	Estimate Estimate `json:"estimate"`
}

// Story is one estimation round. Votes keep first-vote order.
type Story struct {
	Name       string `json:"name"`
	Votes      []Vote `json:"votes"`
	Estimating bool   `json:"estimating"`
}

// NewStory returns a story with no votes, open for estimation.
func NewStory(name string) *Story {
	return &Story{Name: name, Votes: []Vote{}, Estimating: true}
}

// Estimate returns the user's estimate, Absent if they have not voted.
func (s *Story) Estimate(user Identity) Estimate {
	for _, v := range s.Votes {
		if v.User == user {
			return v.Estimate
		}
	}
	return Absent
}

// HasVoted reports whether the user holds an entry, Doubt included.
func (s *Story) HasVoted(user Identity) bool {
	return s.Estimate(user).Kind() != EstimateAbsent
}

// SetEstimate records or overwrites the user's entry. Setting Absent removes it.
func (s *Story) SetEstimate(user Identity, e Estimate) {
	if e.Kind() == EstimateAbsent {
		s.RemoveEstimate(user)
		return
	}
	for i := range s.Votes {
		if s.Votes[i].User == user {
			s.Votes[i].Estimate = e
			return
		}
	}
	s.Votes = append(s.Votes, Vote{User: user, Estimate: e})
}

// RemoveEstimate deletes the user's entry if present.
func (s *Story) RemoveEstimate(user Identity) {
	for i := range s.Votes {
		if s.Votes[i].User == user {
			s.Votes = append(s.Votes[:i], s.Votes[i+1:]...)
			return
		}
	}
}

// Voters returns the users holding an entry, in vote order.
func (s *Story) Voters() []Identity {
	out := make([]Identity, 0, len(s.Votes))
	for _, v := range s.Votes {
		out = append(out, v.User)
	}
	return out
}

// NumericEstimates returns the numeric votes as float64, skipping Doubt.
func (s *Story) NumericEstimates() []float64 {
	out := make([]float64, 0, len(s.Votes))
	for _, v := range s.Votes {
		if n, ok := v.Estimate.Value(); ok {
			out = append(out, float64(n))
		}
	}
	return out
}

// CanAcceptVotes reports whether the story is in its estimating phase.
func (s *Story) CanAcceptVotes() bool {
	return s.Estimating
}

// Session is a planning truco hosted by Host.
type Session struct {
	ID           string     `json:"id"`
	Host         Identity   `json:"host"`
	Participants []Identity `json:"participants"`
	Stories      []*Story   `json:"stories"`
	CurrentStory *string    `json:"current_story,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"` // nil while active
}

// Story returns the named story or nil.
func (s *Session) Story(name string) *Story {
	for _, st := range s.Stories {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// Current returns the current story or nil if none was ever set.
func (s *Session) Current() *Story {
	if s.CurrentStory == nil {
		return nil
	}
	return s.Story(*s.CurrentStory)
}

// HasParticipant reports whether user is in the participant list.
func (s *Session) HasParticipant(user Identity) bool {
	for _, p := range s.Participants {
		if p == user {
			return true
		}
	}
	return false
}

// Ended reports whether the session has been archived.
func (s *Session) Ended() bool {
	return s.EndDate != nil
}

// Registry is every active session keyed by host plus the ended sessions in
// the order they ended.
type Registry struct {
	Sessions map[Identity]*Session `json:"sessions"`
	History  []*Session            `json:"history"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Sessions: map[Identity]*Session{},
		History:  []*Session{},
	}
}

// Request is one command invocation. The caller identity travels in the
// context, see the auth package.
type Request struct {
	ID      string
	Command string
	Arg     string
}

// HasArg reports whether an argument was given.
func (r *Request) HasArg() bool {
	return r.Arg != ""
}

// Response is the textual outcome of a command.
type Response struct {
	Text string
	Err  error // non-nil for error reports; Text holds the user message
}

// IsError reports whether the response is an error report.
func (r Response) IsError() bool {
	return r.Err != nil
}
