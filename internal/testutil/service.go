package testutil

import (
	appmatches "github.com/preston-bernstein/matchintel-service/internal/app/matches"
	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/store"
)

// NewServiceWithSnapshot builds a match service backed by an in-memory store preloaded with snap.
// details may be nil, in which case lookups are answered from the snapshot.
func NewServiceWithSnapshot(snap matches.Snapshot, details appmatches.DetailFetcher) *appmatches.Service {
	ms := store.NewMemoryStore()
	ms.Replace(snap)
	return appmatches.NewService(ms, details)
}
