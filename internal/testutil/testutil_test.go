package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/providers"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	m := SampleMatch("m-1")
	if m.ID != "m-1" || m.Started || m.Teams[0].Name == "" || m.Teams[1].Name == "" {
		t.Fatalf("unexpected match fixture %+v", m)
	}
	live := SampleLiveMatch("m-2")
	if !live.IsLive() || len(live.Innings) != 1 {
		t.Fatalf("expected live fixture, got %+v", live)
	}
	snap := SampleSnapshot()
	if len(snap.Today) != 1 || len(snap.Live) != 1 || len(snap.Upcoming) != 1 {
		t.Fatalf("unexpected snapshot fixture %+v", snap)
	}
	if !snap.LastUpdate.Equal(BaseTime) {
		t.Fatalf("expected snapshot stamped at base time, got %v", snap.LastUpdate)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServiceHelper(t *testing.T) {
	svc := NewServiceWithSnapshot(SampleSnapshot(), nil)
	m, err := svc.Details(context.Background(), "next-1")
	if err != nil || m.ID != "next-1" {
		t.Fatalf("expected snapshot lookup, got %+v err=%v", m, err)
	}
	if _, err := svc.Details(context.Background(), "missing"); !errors.Is(err, providers.ErrMatchNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServerStubs(t *testing.T) {
	c := &StubController{Err: errors.New("stop")}
	c.Start(context.Background())
	if err := c.Stop(context.Background()); !errors.Is(err, c.Err) {
		t.Fatalf("expected stop error")
	}
	if c.StartCalls != 1 || c.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", c)
	}
	if !c.Trigger(context.Background()) {
		t.Fatalf("expected trigger to start when idle")
	}
	c.Busy = true
	if c.Trigger(context.Background()) {
		t.Fatalf("expected trigger to be rejected while busy")
	}
	if c.TriggerCalls != 2 {
		t.Fatalf("expected two trigger calls, got %d", c.TriggerCalls)
	}
	if c.Location() != time.UTC {
		t.Fatalf("expected UTC default location")
	}
	if c.Status() != c.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen failure")
	}
	_ = e.Shutdown(context.Background())
	if e.Addr() == "" || e.ShutdownCalls != 1 {
		t.Fatalf("unexpected ErrHTTPServer state %+v", e)
	}

	cl := &CloseableHTTPServer{}
	if err := cl.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	_ = cl.Shutdown(context.Background())
	if cl.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()

	p := GoodProvider{Detail: SampleMatch("x")}
	if got, err := p.FetchDetails(ctx, "77"); err != nil || got.ID != "77" {
		t.Fatalf("expected detail stamped with id, got %+v err=%v", got, err)
	}

	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchCurrent(ctx); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.FetchDetails(ctx, "1"); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough for details")
	}

	empty := EmptyProvider{}
	if got, err := empty.FetchUpcoming(ctx); err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v err %v", got, err)
	}
	if _, err := empty.FetchDetails(ctx, "1"); !errors.Is(err, providers.ErrMatchNotFound) {
		t.Fatalf("expected not found from empty provider")
	}

	unavail := UnavailableProvider{}
	if _, err := unavail.FetchCurrent(ctx); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}
}

func TestRequestHelpersSetHeaders(t *testing.T) {
	var auth, origin string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		origin = r.Header.Get("Origin")
		w.WriteHeader(http.StatusNoContent)
	})

	AssertStatus(t, ServeAuthorized(h, http.MethodPost, "/admin/refresh", "tok"), http.StatusNoContent)
	if auth != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
	AssertStatus(t, ServeFromOrigin(h, http.MethodGet, "/api/dashboard", "https://scores.example"), http.StatusNoContent)
	if origin != "https://scores.example" {
		t.Fatalf("expected origin header, got %q", origin)
	}
}
