package cricketdata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
)

var errBoom = errors.New("boom")

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{
		BaseURL:    "https://api.example.com/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})
}

const currentBody = `{
	"status": "success",
	"data": [
		{
			"id": "a1",
			"name": "India vs Australia, 1st Test",
			"matchType": "test",
			"status": "Day 2",
			"venue": "Melbourne Cricket Ground",
			"dateTimeGMT": "2026-01-02T09:30:00",
			"teams": ["India", "Australia"],
			"teamInfo": [
				{"name": "India", "shortname": "IND", "img": "https://img/ind.png"},
				{"name": "Australia", "shortname": "AUS"}
			],
			"score": [{"r": 285, "w": 7, "o": 85.4, "inning": "India Inning 1"}],
			"matchStarted": true,
			"matchEnded": false
		},
		{
			"id": 42,
			"name": "Pakistan vs South Africa",
			"date": "2026-01-03",
			"teams": ["Pakistan"],
			"matchStarted": false,
			"matchEnded": false
		}
	]
}`

func TestFetchCurrentHitsAPIAndMapsResponse(t *testing.T) {
	var capturedPath string
	var capturedQuery map[string][]string

	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedQuery = req.URL.Query()
		return jsonResponse(http.StatusOK, currentBody), nil
	})

	got, err := client.FetchCurrent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedPath != "/currentMatches" {
		t.Fatalf("expected /currentMatches path, got %s", capturedPath)
	}
	if capturedQuery["apikey"][0] != "secret" || capturedQuery["offset"][0] != "0" {
		t.Fatalf("expected apikey and offset params, got %v", capturedQuery)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	first := got[0]
	if first.ID != "a1" || first.Format != matches.FormatTest || !first.IsLive() {
		t.Fatalf("unexpected first match %+v", first)
	}
	if first.Teams[0].Logo == "" || first.Teams[1].ShortName != "AUS" {
		t.Fatalf("unexpected teams %+v", first.Teams)
	}

	second := got[1]
	if second.ID != "42" {
		t.Fatalf("expected numeric id to be stringified, got %q", second.ID)
	}
	if second.Venue != matches.VenueUnknown || second.Teams[1].Name != "Team 2" {
		t.Fatalf("expected defaults on sparse record, got %+v", second)
	}
	if len(second.Innings) != 0 {
		t.Fatalf("expected empty innings, got %+v", second.Innings)
	}
}

func TestFetchUpcomingUsesUpcomingPath(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/upcomingMatches" {
			t.Fatalf("expected /upcomingMatches, got %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"data": []}`), nil
	})

	got, err := client.FetchUpcoming(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", got)
	}
}

func TestFetchReturnsStatusErrorOnNon2xx(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, "maintenance"), nil
	})

	_, err := client.FetchCurrent(context.Background())
	statusErr, ok := providers.AsStatusError(err)
	if !ok {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable || statusErr.Body != "maintenance" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestFetchMalformedShapes(t *testing.T) {
	cases := map[string]string{
		"invalid json":    `{not json`,
		"missing data":    `{"status": "success"}`,
		"failure payload": `{"status": "failure", "reason": "Invalid API Key"}`,
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			client := newTestClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, body), nil
			})
			if _, err := client.FetchCurrent(context.Background()); !errors.Is(err, providers.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errBoom
	})
	if _, err := client.FetchCurrent(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errBoom
	})

	for i := 0; i < breakerFailureThreshold; i++ {
		_, _ = client.FetchCurrent(context.Background())
	}
	_, err := client.FetchCurrent(context.Background())
	if !errors.Is(err, providers.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if calls != breakerFailureThreshold {
		t.Fatalf("expected open breaker to skip upstream, got %d calls", calls)
	}
}

func TestFetchDetailsFindsByStringID(t *testing.T) {
	var capturedPath string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		return jsonResponse(http.StatusOK, `{
			"matches": [
				{"id": 7, "name": "First"},
				{"id": "8", "name": "Second", "toss": {"text": "Second won the toss"}, "series": "Cup", "matchEnded": true}
			]
		}`), nil
	})

	m, err := client.FetchDetails(context.Background(), " 8 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedPath != "/matches" {
		t.Fatalf("expected /matches path, got %s", capturedPath)
	}
	if m.Name != "Second" || m.Toss != "Second won the toss" || m.Series != "Cup" {
		t.Fatalf("unexpected detail %+v", m)
	}
	if !m.Started || !m.Ended {
		t.Fatalf("expected ended match to be marked started, got %+v", m)
	}

	m, err = client.FetchDetails(context.Background(), "7")
	if err != nil || m.Name != "First" {
		t.Fatalf("expected numeric id match, got %+v err %v", m, err)
	}
}

func TestFetchDetailsFallsBackToDataField(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data": [{"id": "x"}]}`), nil
	})
	if m, err := client.FetchDetails(context.Background(), "x"); err != nil || m.ID != "x" {
		t.Fatalf("expected lookup through data field, got %+v err %v", m, err)
	}
}

func TestFetchDetailsErrors(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"matches": [{"id": "1"}]}`), nil
	})
	if _, err := client.FetchDetails(context.Background(), "2"); !errors.Is(err, providers.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if _, err := client.FetchDetails(context.Background(), ""); !errors.Is(err, providers.ErrMissingMatchID) {
		t.Fatalf("expected ErrMissingMatchID, got %v", err)
	}

	missing := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"status": "success"}`), nil
	})
	if _, err := missing.FetchDetails(context.Background(), "1"); !errors.Is(err, providers.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestCustomPathsAreHonored(t *testing.T) {
	client := NewClient(Config{
		APIKey:     "k",
		DetailPath: "api/matches",
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Host != "api.cricketdata.org" || req.URL.Path != "/api/matches" {
				t.Fatalf("unexpected url %s", req.URL)
			}
			return jsonResponse(http.StatusOK, `{"matches": [{"id": "1"}]}`), nil
		})},
	})
	if _, err := client.FetchDetails(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name() != "cricketdata" {
		t.Fatalf("unexpected name %s", client.Name())
	}
}

func TestCallerCancellationDoesNotOpenCircuit(t *testing.T) {
	calls := 0
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, currentBody), nil
	})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < breakerFailureThreshold*2; i++ {
		if _, err := client.FetchDetails(cancelled, "a1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	}
	if calls != 0 {
		t.Fatalf("expected no upstream calls for cancelled requests, got %d", calls)
	}

	got, err := client.FetchCurrent(context.Background())
	if err != nil {
		t.Fatalf("expected healthy upstream after cancelled callers, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestAbortMidRequestDoesNotOpenCircuit(t *testing.T) {
	var cancel context.CancelFunc
	abort := true
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if abort {
			cancel()
			return nil, req.Context().Err()
		}
		return jsonResponse(http.StatusOK, currentBody), nil
	})

	for i := 0; i < breakerFailureThreshold*2; i++ {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		defer cancel()
		if _, err := client.FetchDetails(ctx, "a1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	}

	abort = false
	if _, err := client.FetchCurrent(context.Background()); err != nil {
		t.Fatalf("expected closed circuit after aborted requests, got %v", err)
	}
}
