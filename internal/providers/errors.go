package providers

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable is returned when no upstream is configured or reachable.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrMalformedResponse marks a response whose shape could not be decoded.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrMatchNotFound is returned when a detail lookup finds no record with the id.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMissingMatchID is returned for detail lookups without an id.
	ErrMissingMatchID = errors.New("match id is required")
	// ErrCircuitOpen is returned while the upstream circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("provider circuit open")
)

// StatusError captures a non-2xx upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.providerName(), e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) providerName() string {
	if e.Provider == "" {
		return "provider"
	}
	return e.Provider
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// ShouldFallback reports whether err may be answered with fixture data.
// Caller mistakes and cancellation are returned as-is.
func ShouldFallback(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingMatchID) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
