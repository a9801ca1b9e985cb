package matches

import "time"

// Snapshot is the application-wide view of the most recent refresh.
// It is replaced as a whole value; callers never mutate a published snapshot.
type Snapshot struct {
	Today      []Match   `json:"today"`
	Live       []Match   `json:"live"`
	Upcoming   []Match   `json:"upcoming"`
	Loading    bool      `json:"loading"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// NewSnapshot builds a ready snapshot from the two fetched lists.
func NewSnapshot(today, upcoming []Match, at time.Time) Snapshot {
	if today == nil {
		today = []Match{}
	}
	if upcoming == nil {
		upcoming = []Match{}
	}
	return Snapshot{
		Today:      today,
		Live:       FilterLive(today),
		Upcoming:   upcoming,
		Loading:    false,
		LastUpdate: at,
	}
}

// WithLoading returns a copy of the snapshot with the loading flag set.
func (s Snapshot) WithLoading(loading bool) Snapshot {
	s.Loading = loading
	return s
}

// MatchByID searches today's matches first, then upcoming.
func (s Snapshot) MatchByID(id string) (Match, bool) {
	if m, ok := FindByID(s.Today, id); ok {
		return m, true
	}
	return FindByID(s.Upcoming, id)
}
