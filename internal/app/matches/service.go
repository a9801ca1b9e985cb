package matches

import (
	"context"
	"strings"

	domain "github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
)

// Store defines the read side of the current snapshot.
type Store interface {
	Snapshot() domain.Snapshot
	MatchByID(id string) (domain.Match, bool)
}

// DetailFetcher loads a single match from upstream.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, id string) (domain.Match, error)
}

// Service coordinates snapshot reads and detail lookups.
type Service struct {
	store   Store
	details DetailFetcher
}

// NewService constructs a Service. details may be nil, in which case lookups only consult the snapshot.
func NewService(store Store, details DetailFetcher) *Service {
	return &Service{store: store, details: details}
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() domain.Snapshot {
	return s.store.Snapshot()
}

// Details resolves a match through the fetch layer, falling back to the snapshot when no fetcher is configured.
func (s *Service) Details(ctx context.Context, id string) (domain.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Match{}, providers.ErrMissingMatchID
	}
	if s.details != nil {
		return s.details.FetchDetails(ctx, id)
	}
	if m, ok := s.store.MatchByID(id); ok {
		return m, nil
	}
	return domain.Match{}, providers.ErrMatchNotFound
}
