package providers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/metrics"
)

// FallbackProvider wraps a live provider and answers failed calls from a fixture provider
// when demo mode is enabled. With demo mode disabled the live error is returned.
type FallbackProvider struct {
	primary  MatchProvider
	fallback MatchProvider
	enabled  bool
	name     string
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewFallbackProvider wraps primary. fallback may be nil, which disables substitution.
func NewFallbackProvider(primary, fallback MatchProvider, enabled bool, logger *slog.Logger, recorder *metrics.Recorder, name string) *FallbackProvider {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "provider"
	}
	return &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		enabled:  enabled && fallback != nil,
		name:     name,
		logger:   logger,
		metrics:  recorder,
	}
}

// Name returns the provider name used in logs and metrics.
func (p *FallbackProvider) Name() string {
	return p.name
}

// DemoMode reports whether fixture substitution is active.
func (p *FallbackProvider) DemoMode() bool {
	return p.enabled
}

func (p *FallbackProvider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	list, err := p.fetchList(ctx, ResourceCurrent, p.primaryCurrent)
	if err == nil {
		return list, nil
	}
	if !p.shouldSubstitute(ctx, ResourceCurrent, err) {
		return nil, err
	}
	return p.fallback.FetchCurrent(ctx)
}

func (p *FallbackProvider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	list, err := p.fetchList(ctx, ResourceUpcoming, p.primaryUpcoming)
	if err == nil {
		return list, nil
	}
	if !p.shouldSubstitute(ctx, ResourceUpcoming, err) {
		return nil, err
	}
	return p.fallback.FetchUpcoming(ctx)
}

func (p *FallbackProvider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return matches.Match{}, ErrMissingMatchID
	}

	start := time.Now()
	var (
		m   matches.Match
		err error
	)
	if p.primary == nil {
		err = ErrProviderUnavailable
	} else {
		m, err = p.primary.FetchDetails(ctx, id)
	}
	p.metrics.RecordProviderAttempt(p.name, time.Since(start), err)
	if err == nil {
		return m, nil
	}
	if !p.shouldSubstitute(ctx, ResourceDetails, err, slog.String(logging.FieldMatchID, id)) {
		return matches.Match{}, err
	}
	return p.fallback.FetchDetails(ctx, id)
}

func (p *FallbackProvider) primaryCurrent(ctx context.Context) ([]matches.Match, error) {
	return p.primary.FetchCurrent(ctx)
}

func (p *FallbackProvider) primaryUpcoming(ctx context.Context) ([]matches.Match, error) {
	return p.primary.FetchUpcoming(ctx)
}

func (p *FallbackProvider) fetchList(ctx context.Context, resource string, fetch func(context.Context) ([]matches.Match, error)) ([]matches.Match, error) {
	if p.primary == nil {
		return nil, ErrProviderUnavailable
	}
	start := time.Now()
	list, err := fetch(ctx)
	p.metrics.RecordProviderAttempt(p.name, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "provider fetch ok",
		slog.String(logging.FieldResource, resource),
		slog.Int(logging.FieldCount, len(list)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return list, nil
}

func (p *FallbackProvider) shouldSubstitute(ctx context.Context, resource string, err error, attrs ...any) bool {
	attrs = append(attrs, slog.String(logging.FieldResource, resource), slog.Any("error", err))
	if !p.enabled || !ShouldFallback(err) {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider fetch failed", attrs...)
		return false
	}
	p.metrics.RecordFallback(p.name, resource)
	logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider fetch failed, serving demo data", attrs...)
	return true
}
