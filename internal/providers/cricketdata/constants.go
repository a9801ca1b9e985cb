package cricketdata

import "time"

const (
	providerName = "cricketdata"

	defaultBaseURL      = "https://api.cricketdata.org"
	defaultCurrentPath  = "/currentMatches"
	defaultUpcomingPath = "/upcomingMatches"
	defaultDetailPath   = "/matches"
	defaultHTTPTimeout  = 10 * time.Second

	apiKeyParam  = "apikey"
	maxErrorBody = 512

	// Breaker trips after this many consecutive failures and half-opens after breakerTimeout.
	breakerFailureThreshold = 5
	breakerTimeout          = time.Minute
	breakerHalfOpenRequests = 1
)
