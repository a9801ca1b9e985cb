package providers

import (
	"context"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
)

// Resource names identify which dataset a call targets in logs, metrics, and fallback lookups.
const (
	ResourceCurrent  = "current"
	ResourceUpcoming = "upcoming"
	ResourceDetails  = "details"
)

// MatchProvider defines how upstream match data is fetched and normalized.
type MatchProvider interface {
	// FetchCurrent returns matches scheduled or in progress today.
	FetchCurrent(ctx context.Context) ([]matches.Match, error)
	// FetchUpcoming returns matches scheduled in the near future.
	FetchUpcoming(ctx context.Context) ([]matches.Match, error)
	// FetchDetails returns a single match by id.
	FetchDetails(ctx context.Context, id string) (matches.Match, error)
}
