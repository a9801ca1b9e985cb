package presenter

import (
	"net/url"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
)

// Placeholder messages shown instead of a list or a score card.
const (
	EmptyIcon = "🏏"

	MsgNoTodayMatches    = "No matches scheduled for today"
	MsgNoUpcomingMatches = "No upcoming matches found"
	MsgLoadFailed        = "Unable to load matches. Please try again later."
	MsgNoMatchID         = "No match ID provided"
	MsgNotStarted        = "Match not started"
)

// DetailPath is the navigation target for a match card.
const DetailPath = "/match"

// Placeholder is rendered in place of an empty list or missing data.
type Placeholder struct {
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

// EmptyState builds a placeholder with the standard icon.
func EmptyState(message string) *Placeholder {
	return &Placeholder{Icon: EmptyIcon, Message: message}
}

// Badge pairs a status label with its style hint.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// TeamLine is one side of a card. Score is empty when that innings has not been played.
type TeamLine struct {
	Name  string `json:"name"`
	Score string `json:"score,omitempty"`
}

// StatPreview is the footer of a card.
type StatPreview struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MatchCard is the dashboard rendering of a single match.
type MatchCard struct {
	ID      string       `json:"id"`
	Format  string       `json:"format"`
	Status  Badge        `json:"status"`
	Teams   [2]TeamLine  `json:"teams"`
	Venue   string       `json:"venue"`
	Time    string       `json:"time"`
	Preview *StatPreview `json:"preview,omitempty"`
	Link    string       `json:"link"`
}

// Section is an ordered list of cards, or a placeholder when there is nothing to show.
type Section struct {
	Cards       []MatchCard  `json:"cards"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// Counters are the three headline numbers on the dashboard.
type Counters struct {
	Live     int `json:"live"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
}

// DashboardView is everything the dashboard surface needs for one redraw.
type DashboardView struct {
	Today       Section   `json:"today"`
	Upcoming    Section   `json:"upcoming"`
	Counters    Counters  `json:"counters"`
	LastUpdate  time.Time `json:"lastUpdate"`
	GeneratedAt time.Time `json:"generatedAt"`
	Loading     bool      `json:"loading"`
	Failed      bool      `json:"failed"`
}

// ScoreRowView is one innings on the detail score card.
type ScoreRowView struct {
	Label string `json:"label"`
	Score string `json:"score"`
}

// InfoRow is one labelled fact on the detail page.
type InfoRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailView is the rendering of a single match page.
type DetailView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Format      string         `json:"format"`
	Badge       Badge          `json:"badge"`
	Scores      []ScoreRowView `json:"scores"`
	Placeholder *Placeholder   `json:"placeholder,omitempty"`
	Info        []InfoRow      `json:"info"`
	Live        bool           `json:"live"`
}

// Card builds the dashboard card for m.
func Card(m matches.Match, now time.Time, loc *time.Location) MatchCard {
	card := MatchCard{
		ID:     m.ID,
		Format: m.Format.Label(),
		Status: Badge{Label: StatusLabel(m), Class: StatusClass(m)},
		Venue:  m.Venue,
		Time:   TimeLabel(m.StartTime, now, loc),
		Link:   DetailPath + "?id=" + url.QueryEscape(m.ID),
	}
	for i := range card.Teams {
		line := TeamLine{Name: m.Teams[i].Name}
		if i < len(m.Innings) {
			line.Score = ScoreLine(m.Innings[i])
		}
		card.Teams[i] = line
	}
	if rate, ok := RunRate(m); ok {
		card.Preview = &StatPreview{Label: "Current Run Rate", Value: rate + " runs/over"}
	} else if !m.Started {
		card.Preview = &StatPreview{Label: "Match Preview", Value: "Click for detailed analysis"}
	}
	return card
}

// Dashboard builds the ready-state view of a snapshot.
func Dashboard(s matches.Snapshot, now time.Time, loc *time.Location) DashboardView {
	return DashboardView{
		Today:       section(s.Today, MsgNoTodayMatches, now, loc),
		Upcoming:    section(s.Upcoming, MsgNoUpcomingMatches, now, loc),
		Counters:    counters(s),
		LastUpdate:  s.LastUpdate,
		GeneratedAt: now,
		Loading:     s.Loading,
	}
}

// DashboardFailure builds the view shown when a refresh cycle could not load either list.
// Both sections carry the load-failure placeholder; counters keep the last known values.
func DashboardFailure(s matches.Snapshot, now time.Time) DashboardView {
	return DashboardView{
		Today:       Section{Cards: []MatchCard{}, Placeholder: EmptyState(MsgLoadFailed)},
		Upcoming:    Section{Cards: []MatchCard{}, Placeholder: EmptyState(MsgLoadFailed)},
		Counters:    counters(s),
		LastUpdate:  s.LastUpdate,
		GeneratedAt: now,
		Loading:     s.Loading,
		Failed:      true,
	}
}

// Detail builds the match page for m.
func Detail(m matches.Match, loc *time.Location) DetailView {
	view := DetailView{
		ID:     m.ID,
		Title:  m.Name,
		Format: m.Format.Label(),
		Badge:  Badge{Label: StatusLabel(m), Class: StatusClass(m)},
		Scores: make([]ScoreRowView, 0, len(m.Innings)),
		Live:   m.IsLive(),
	}
	for _, in := range m.Innings {
		view.Scores = append(view.Scores, ScoreRowView{Label: in.Label, Score: ScoreRow(in)})
	}
	if len(view.Scores) == 0 {
		view.Placeholder = EmptyState(MsgNotStarted)
	}
	view.Info = infoRows(m, loc)
	return view
}

// MissingDetail is the view for a detail request without a match id.
func MissingDetail() DetailView {
	return DetailView{
		Scores:      []ScoreRowView{},
		Placeholder: EmptyState(MsgNoMatchID),
		Info:        []InfoRow{},
	}
}

// DetailFailure is the view for a detail lookup that failed with demo mode off.
func DetailFailure(id string) DetailView {
	view := MissingDetail()
	view.ID = id
	view.Placeholder = EmptyState(MsgLoadFailed)
	return view
}

func infoRows(m matches.Match, loc *time.Location) []InfoRow {
	date, clock := matches.VenueUnknown, matches.VenueUnknown
	if !m.StartTime.IsZero() {
		local := m.StartTime.In(location(loc))
		date = local.Format(detailDate)
		clock = local.Format(detailTime)
	}
	rows := []InfoRow{
		{Label: "Venue", Value: m.Venue},
		{Label: "Date", Value: date},
		{Label: "Time", Value: clock},
	}
	if m.Toss != "" {
		rows = append(rows, InfoRow{Label: "Toss", Value: m.Toss})
	}
	if m.Series != "" {
		rows = append(rows, InfoRow{Label: "Series", Value: m.Series})
	}
	return rows
}

func section(list []matches.Match, emptyMessage string, now time.Time, loc *time.Location) Section {
	cards := make([]MatchCard, 0, len(list))
	for _, m := range list {
		cards = append(cards, Card(m, now, loc))
	}
	out := Section{Cards: cards}
	if len(cards) == 0 {
		out.Placeholder = EmptyState(emptyMessage)
	}
	return out
}

func counters(s matches.Snapshot) Counters {
	return Counters{
		Live:     len(s.Live),
		Today:    len(s.Today),
		Upcoming: len(s.Upcoming),
	}
}
