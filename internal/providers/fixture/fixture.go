package fixture

import (
	"context"
	"strings"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
)

const providerName = "fixture"

// Provider returns a deterministic set of matches used for demo mode and local testing.
// Start times are relative to the injected clock so labels stay meaningful.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// NewWithClock creates a fixture provider with a fixed clock.
func NewWithClock(now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{now: now}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	return p.current(), nil
}

func (p *Provider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	return p.upcoming(), nil
}

// FetchDetails always succeeds: the demo detail carries whatever id was requested.
func (p *Provider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	_ = ctx
	return p.detail(id), nil
}

// Dataset returns the demo list for a resource name, or an empty list for unknown resources.
func (p *Provider) Dataset(resource string) []matches.Match {
	switch strings.ToLower(strings.TrimSpace(resource)) {
	case "current":
		return p.current()
	case "upcoming":
		return p.upcoming()
	default:
		return []matches.Match{}
	}
}

func (p *Provider) current() []matches.Match {
	now := p.now().UTC()
	return []matches.Match{
		{
			ID:        "1",
			Name:      "India vs Australia, 1st Test",
			Format:    matches.FormatTest,
			Venue:     "Melbourne Cricket Ground",
			StartTime: now,
			Teams: [2]matches.Team{
				{Name: "India", ShortName: "IND"},
				{Name: "Australia", ShortName: "AUS"},
			},
			Innings: []matches.Innings{
				{Runs: 285, Wickets: 7, Overs: 85.4, Label: "India Innings 1"},
				{Runs: 195, Wickets: 10, Overs: 65.2, Label: "Australia Innings 1"},
			},
			Started:    true,
			StatusText: "Day 2 - Session 3",
		},
		{
			ID:        "2",
			Name:      "England vs New Zealand, 2nd ODI",
			Format:    matches.FormatODI,
			Venue:     "Lord's Cricket Ground",
			StartTime: now,
			Teams: [2]matches.Team{
				{Name: "England", ShortName: "ENG"},
				{Name: "New Zealand", ShortName: "NZ"},
			},
			Innings: []matches.Innings{
				{Runs: 312, Wickets: 6, Overs: 50, Label: "England Innings 1"},
				{Runs: 187, Wickets: 4, Overs: 32.3, Label: "New Zealand Innings 1"},
			},
			Started:    true,
			StatusText: "New Zealand need 126 runs",
		},
		{
			ID:        "3",
			Name:      "Pakistan vs South Africa, T20I",
			Format:    matches.FormatT20,
			Venue:     "National Stadium, Karachi",
			StartTime: now.Add(time.Hour),
			Teams: [2]matches.Team{
				{Name: "Pakistan", ShortName: "PAK"},
				{Name: "South Africa", ShortName: "SA"},
			},
			Innings:    []matches.Innings{},
			StatusText: "Match starts soon",
		},
	}
}

func (p *Provider) upcoming() []matches.Match {
	now := p.now().UTC()
	return []matches.Match{
		{
			ID:        "4",
			Name:      "Sri Lanka vs Bangladesh, 1st Test",
			Format:    matches.FormatTest,
			Venue:     "Galle International Stadium",
			StartTime: now.Add(24 * time.Hour),
			Teams: [2]matches.Team{
				{Name: "Sri Lanka", ShortName: "SL"},
				{Name: "Bangladesh", ShortName: "BAN"},
			},
			Innings: []matches.Innings{},
		},
		{
			ID:        "5",
			Name:      "West Indies vs Ireland, ODI Series",
			Format:    matches.FormatODI,
			Venue:     "Kensington Oval, Barbados",
			StartTime: now.Add(48 * time.Hour),
			Teams: [2]matches.Team{
				{Name: "West Indies", ShortName: "WI"},
				{Name: "Ireland", ShortName: "IRE"},
			},
			Innings: []matches.Innings{},
		},
	}
}

func (p *Provider) detail(id string) matches.Match {
	return matches.Match{
		ID:        id,
		Name:      "India vs Australia, 1st Test",
		Format:    matches.FormatTest,
		Venue:     "Melbourne Cricket Ground",
		StartTime: p.now().UTC(),
		Teams: [2]matches.Team{
			{Name: "India", ShortName: "IND"},
			{Name: "Australia", ShortName: "AUS"},
		},
		Innings: []matches.Innings{
			{Runs: 285, Wickets: 7, Overs: 85.4, Label: "India Innings"},
		},
		Started:    true,
		Toss:       "India won the toss and elected to bat",
		Series:     "Border-Gavaskar Trophy 2026",
		StatusText: "Day 2 - Session 3",
	}
}
