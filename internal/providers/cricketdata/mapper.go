package cricketdata

import (
	"strings"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/timeutil"
)

func mapMatches(records []matchRecord) []matches.Match {
	out := make([]matches.Match, 0, len(records))
	for _, r := range records {
		out = append(out, mapMatch(r))
	}
	return out
}

func mapMatch(r matchRecord) matches.Match {
	venue := strings.TrimSpace(r.Venue)
	if venue == "" {
		venue = matches.VenueUnknown
	}

	m := matches.Match{
		ID:         string(r.ID),
		Name:       strings.TrimSpace(r.Name),
		Format:     mapFormat(r.MatchType),
		Venue:      venue,
		StartTime:  timeutil.FirstTimestamp(r.DateTimeGMT, r.Date),
		Teams:      mapTeams(r.TeamInfo, r.Teams),
		Innings:    mapInnings(r.Score),
		Started:    r.MatchStarted,
		Ended:      r.MatchEnded,
		Toss:       strings.TrimSpace(string(r.Toss)),
		Series:     strings.TrimSpace(r.Series),
		StatusText: strings.TrimSpace(r.Status),
	}
	// A finished match has necessarily started.
	if m.Ended {
		m.Started = true
	}
	return m
}

func mapFormat(raw string) matches.Format {
	return matches.Format(strings.ToUpper(strings.TrimSpace(raw)))
}

// mapTeams prefers teamInfo, synthesizes from the bare names list, then falls back positionally.
func mapTeams(info []teamRecord, names []string) [2]matches.Team {
	var teams [2]matches.Team
	for i := range teams {
		team := matches.DefaultTeam(i)
		name := ""
		if i < len(info) {
			name = strings.TrimSpace(info[i].Name)
			if short := strings.TrimSpace(info[i].ShortName); short != "" {
				team.ShortName = short
			}
			team.Logo = strings.TrimSpace(info[i].Img)
		}
		if name == "" && i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		if name != "" {
			team.Name = name
		}
		teams[i] = team
	}
	return teams
}

func mapInnings(scores []scoreEntry) []matches.Innings {
	out := make([]matches.Innings, 0, len(scores))
	for _, s := range scores {
		out = append(out, matches.Innings{
			Runs:    s.Runs,
			Wickets: s.Wickets,
			Overs:   s.Overs,
			Label:   strings.TrimSpace(s.Inning),
		})
	}
	return out
}
