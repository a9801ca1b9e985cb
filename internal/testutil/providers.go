package testutil

import (
	"context"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
)

// GoodProvider returns the provided matches with no error.
type GoodProvider struct {
	Current  []matches.Match
	Upcoming []matches.Match
	Detail   matches.Match
}

func (p GoodProvider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	return p.Current, nil
}

func (p GoodProvider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	return p.Upcoming, nil
}

// FetchDetails returns Detail stamped with the requested id.
func (p GoodProvider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	_ = ctx
	m := p.Detail
	m.ID = id
	return m, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	return matches.Match{}, p.Err
}

// EmptyProvider returns no matches and no error; detail lookups report not found.
type EmptyProvider struct{}

func (EmptyProvider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	return []matches.Match{}, nil
}

func (EmptyProvider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	return []matches.Match{}, nil
}

func (EmptyProvider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	return matches.Match{}, providers.ErrMatchNotFound
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	return matches.Match{}, providers.ErrProviderUnavailable
}
