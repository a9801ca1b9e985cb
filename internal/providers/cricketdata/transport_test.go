package cricketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"  ", defaultBaseURL},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com", "https://api.example.com"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestNormalizePathAddsLeadingSlash(t *testing.T) {
	if got := normalizePath("", defaultCurrentPath); got != defaultCurrentPath {
		t.Fatalf("expected default path, got %s", got)
	}
	if got := normalizePath("series", defaultCurrentPath); got != "/series" {
		t.Fatalf("expected leading slash, got %s", got)
	}
}

func TestResolveHTTPClientDefaultsTimeout(t *testing.T) {
	client := resolveHTTPClient(nil, 0)
	httpClient, ok := client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client)
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected timeout %s, got %s", defaultHTTPTimeout, httpClient.Timeout)
	}

	custom := resolveHTTPClient(nil, 3*time.Second).(*http.Client)
	if custom.Timeout != 3*time.Second {
		t.Fatalf("expected configured timeout, got %s", custom.Timeout)
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	client := resolveHTTPClient(custom, time.Second)
	if client != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestNewBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	cb := newBreaker()
	if cb.Name() != providerName {
		t.Fatalf("expected breaker name %s, got %s", providerName, cb.Name())
	}
	for i := 0; i < breakerFailureThreshold; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errBoom })
	}
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", cb.State())
	}
}

func TestBreakerIgnoresAbortedRequests(t *testing.T) {
	if !isBreakerSuccess(nil) {
		t.Fatalf("expected nil error to count as success")
	}
	if isBreakerSuccess(errBoom) {
		t.Fatalf("expected upstream error to count as failure")
	}
	aborted := fmt.Errorf("wrapped: %w", &abortedError{err: context.Canceled})
	if !isBreakerSuccess(aborted) {
		t.Fatalf("expected aborted request not to count as failure")
	}
	if !errors.Is(aborted, context.Canceled) {
		t.Fatalf("expected aborted error to unwrap to context.Canceled")
	}

	cb := newBreaker()
	for i := 0; i < breakerFailureThreshold; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, &abortedError{err: context.DeadlineExceeded} })
	}
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("expected closed breaker, got %s", cb.State())
	}
}
