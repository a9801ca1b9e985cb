package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
)

// MemoryStore keeps the current application snapshot in memory.
// Writers swap the whole value; readers never observe a partially built snapshot.
type MemoryStore struct {
	mu   sync.RWMutex
	snap matches.Snapshot
}

// NewMemoryStore constructs a store holding an empty snapshot.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snap: matches.NewSnapshot(nil, nil, time.Time{}),
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *MemoryStore) Snapshot() matches.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap)
}

// Replace swaps the stored snapshot for next.
func (s *MemoryStore) Replace(next matches.Snapshot) {
	next = cloneSnapshot(next)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = next
}

// MatchByID looks up a match in the current snapshot.
func (s *MemoryStore) MatchByID(id string) (matches.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.MatchByID(id)
}

func cloneSnapshot(in matches.Snapshot) matches.Snapshot {
	out := in
	out.Today = cloneMatches(in.Today)
	out.Live = cloneMatches(in.Live)
	out.Upcoming = cloneMatches(in.Upcoming)
	return out
}

func cloneMatches(in []matches.Match) []matches.Match {
	out := make([]matches.Match, len(in))
	for i, m := range in {
		m.Innings = append([]matches.Innings(nil), m.Innings...)
		if m.Innings == nil {
			m.Innings = []matches.Innings{}
		}
		out[i] = m
	}
	return out
}
