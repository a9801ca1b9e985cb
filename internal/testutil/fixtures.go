package testutil

import (
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
)

// SampleMatch returns a scheduled match with the provided id, starting an hour after BaseTime.
func SampleMatch(id string) matches.Match {
	return matches.Match{
		ID:        id,
		Name:      "England vs New Zealand, 2nd ODI",
		Format:    matches.FormatODI,
		Venue:     "Lord's, London",
		StartTime: BaseTime.Add(time.Hour),
		Teams: [2]matches.Team{
			{Name: "England", ShortName: "ENG"},
			{Name: "New Zealand", ShortName: "NZ"},
		},
		Innings: []matches.Innings{},
	}
}

// SampleLiveMatch returns an in-progress match with one innings played.
func SampleLiveMatch(id string) matches.Match {
	m := SampleMatch(id)
	m.StartTime = BaseTime.Add(-2 * time.Hour)
	m.Started = true
	m.Innings = []matches.Innings{
		{Runs: 187, Wickets: 4, Overs: 32.3, Label: "England Innings"},
	}
	return m
}

// SampleSnapshot builds a ready snapshot with one live match today and one upcoming match.
func SampleSnapshot() matches.Snapshot {
	return matches.NewSnapshot(
		[]matches.Match{SampleLiveMatch("live-1")},
		[]matches.Match{SampleMatch("next-1")},
		BaseTime,
	)
}
