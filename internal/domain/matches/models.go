package matches

import (
	"strings"
	"time"
)

// Format identifies the match format. The set is open; upstream values pass through uppercased.
type Format string

const (
	FormatTest    Format = "TEST"
	FormatODI     Format = "ODI"
	FormatT20     Format = "T20"
	FormatUnknown Format = "Match"
)

// Label returns the display label, substituting the generic label when empty.
func (f Format) Label() string {
	if strings.TrimSpace(string(f)) == "" {
		return string(FormatUnknown)
	}
	return string(f)
}

// Status is derived from the started/ended flags and never stored independently.
type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusLive      Status = "LIVE"
	StatusCompleted Status = "COMPLETED"
)

// VenueUnknown is used when upstream omits the venue.
const VenueUnknown = "TBA"

// Team is one side of a match.
type Team struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Logo      string `json:"logo,omitempty"`
}

// Innings is a single batting innings.
type Innings struct {
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Overs   float64 `json:"overs"`
	Label   string  `json:"label"`
}

// Match is the normalized view of an upstream fixture.
type Match struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Format     Format    `json:"format"`
	Venue      string    `json:"venue"`
	StartTime  time.Time `json:"startTime"`
	Teams      [2]Team   `json:"teams"`
	Innings    []Innings `json:"innings"`
	Started    bool      `json:"started"`
	Ended      bool      `json:"ended"`
	Toss       string    `json:"toss,omitempty"`
	Series     string    `json:"series,omitempty"`
	StatusText string    `json:"statusText,omitempty"`
}

// Status derives the lifecycle state from the started/ended flags.
func (m Match) Status() Status {
	switch {
	case m.Ended:
		return StatusCompleted
	case m.Started:
		return StatusLive
	default:
		return StatusUpcoming
	}
}

// IsLive reports whether the match has started and not yet ended.
func (m Match) IsLive() bool {
	return m.Started && !m.Ended
}

// LastInnings returns the most recent innings, if any.
func (m Match) LastInnings() (Innings, bool) {
	if len(m.Innings) == 0 {
		return Innings{}, false
	}
	return m.Innings[len(m.Innings)-1], true
}

// DefaultTeam returns the positional placeholder for a missing team (index 0 or 1).
func DefaultTeam(index int) Team {
	if index == 1 {
		return Team{Name: "Team 2", ShortName: "T2"}
	}
	return Team{Name: "Team 1", ShortName: "T1"}
}

// FilterLive returns the subset of matches that are currently live, preserving order.
func FilterLive(list []Match) []Match {
	live := make([]Match, 0, len(list))
	for _, m := range list {
		if m.IsLive() {
			live = append(live, m)
		}
	}
	return live
}

// FindByID returns the first match whose id equals id.
func FindByID(list []Match, id string) (Match, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Match{}, false
}
