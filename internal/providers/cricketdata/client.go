package cricketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
)

// Config controls how the cricketdata client reaches the upstream API.
type Config struct {
	BaseURL      string
	APIKey       string
	HTTPClient   *http.Client
	Timeout      time.Duration
	CurrentPath  string
	UpcomingPath string
	DetailPath   string
	Breaker      *gobreaker.CircuitBreaker
}

// Client fetches matches from the cricketdata API and maps them to domain models.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   httpDoer
	breaker      *gobreaker.CircuitBreaker
	currentPath  string
	upcomingPath string
	detailPath   string
}

// NewClient constructs a cricketdata client with the provided configuration.
func NewClient(cfg Config) *Client {
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = newBreaker()
	}
	return &Client{
		baseURL:      normalizeBaseURL(cfg.BaseURL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		httpClient:   resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		breaker:      breaker,
		currentPath:  normalizePath(cfg.CurrentPath, defaultCurrentPath),
		upcomingPath: normalizePath(cfg.UpcomingPath, defaultUpcomingPath),
		detailPath:   normalizePath(cfg.DetailPath, defaultDetailPath),
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// FetchCurrent retrieves today's matches.
func (c *Client) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	return c.fetchList(ctx, c.currentPath)
}

// FetchUpcoming retrieves scheduled matches.
func (c *Client) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	return c.fetchList(ctx, c.upcomingPath)
}

// FetchDetails searches the match list for id. Ids are compared as strings.
func (c *Client) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return matches.Match{}, providers.ErrMissingMatchID
	}

	payload, err := c.get(ctx, c.detailPath, nil)
	if err != nil {
		return matches.Match{}, err
	}

	records := payload.Matches
	if records == nil {
		records = payload.Data
	}
	if records == nil {
		return matches.Match{}, fmt.Errorf("%s %s: missing matches field: %w", providerName, c.detailPath, providers.ErrMalformedResponse)
	}
	for _, r := range *records {
		if string(r.ID) == id {
			return mapMatch(r), nil
		}
	}
	return matches.Match{}, fmt.Errorf("%s: %s: %w", providerName, id, providers.ErrMatchNotFound)
}

func (c *Client) fetchList(ctx context.Context, path string) ([]matches.Match, error) {
	params := url.Values{}
	params.Set("offset", "0")

	payload, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%s %s: missing data field: %w", providerName, path, providers.ErrMalformedResponse)
	}
	return mapMatches(*payload.Data), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (listResponse, error) {
	req, err := c.buildRequest(ctx, path, params)
	if err != nil {
		return listResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return listResponse{}, fmt.Errorf("%s: %w", providerName, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return listResponse{}, fmt.Errorf("%w: %v", providers.ErrCircuitOpen, err)
		}
		return listResponse{}, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return listResponse{}, fmt.Errorf("%s: unexpected breaker result %T", providerName, result)
	}
	defer resp.Body.Close()

	var payload listResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return listResponse{}, fmt.Errorf("%s %s: %v: %w", providerName, path, decodeErr, providers.ErrMalformedResponse)
	}
	if strings.EqualFold(payload.Status, "failure") {
		reason := payload.Reason
		if reason == "" {
			reason = "upstream reported failure"
		}
		return listResponse{}, fmt.Errorf("%s %s: %s: %w", providerName, path, reason, providers.ErrMalformedResponse)
	}
	return payload, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%s: %w", providerName, err)
		if req.Context().Err() != nil {
			return nil, &abortedError{err: err}
		}
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set(apiKeyParam, c.apiKey)
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	return req, nil
}
