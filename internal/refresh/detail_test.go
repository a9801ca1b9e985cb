package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
	"github.com/preston-bernstein/matchintel-service/internal/teststubs"
)

func TestDetailWatcherEmptyIDRendersPlaceholder(t *testing.T) {
	provider := &teststubs.StubProvider{}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "   ", nil, Options{Interval: time.Millisecond})

	w.Start(context.Background())

	view, ok := renderer.LastDetail()
	if !ok || view.Placeholder == nil || view.Placeholder.Message != presenter.MsgNoMatchID {
		t.Fatalf("expected missing id placeholder, got %+v", view)
	}
	if provider.Details.Load() != 0 {
		t.Fatalf("expected no fetch for empty id")
	}
	if w.Armed() {
		t.Fatalf("expected no timer for empty id")
	}
}

func TestDetailWatcherStopsRearmingOnceEnded(t *testing.T) {
	provider := &teststubs.StubProvider{DetailSeq: []matches.Match{
		{Started: true, Innings: []matches.Innings{{Runs: 100, Overs: 20}}},
		{Started: true, Ended: true, Innings: []matches.Innings{{Runs: 250, Overs: 50}}},
	}}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "42", nil, Options{Interval: 5 * time.Millisecond})
	defer w.Stop()

	w.Start(context.Background())
	waitFor(t, func() bool { return renderer.DetailCount() >= 2 })
	time.Sleep(30 * time.Millisecond)

	if got := provider.Details.Load(); got != 2 {
		t.Fatalf("expected exactly two loads, got %d", got)
	}
	if w.Armed() {
		t.Fatalf("expected no timer once match ended")
	}
	view, _ := renderer.LastDetail()
	if view.ID != "42" || view.Live || view.Badge.Label != presenter.LabelCompleted {
		t.Fatalf("unexpected final view %+v", view)
	}
}

func TestDetailWatcherNotLiveRendersOnce(t *testing.T) {
	provider := &teststubs.StubProvider{Detail: matches.Match{Name: "Later"}}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "7", nil, Options{Interval: time.Millisecond})
	defer w.Stop()

	w.Start(context.Background())
	time.Sleep(10 * time.Millisecond)

	if renderer.DetailCount() != 1 || provider.Details.Load() != 1 || w.Armed() {
		t.Fatalf("expected a single render for upcoming match, got %d renders", renderer.DetailCount())
	}
	view, _ := renderer.LastDetail()
	if view.Placeholder == nil || view.Placeholder.Message != presenter.MsgNotStarted {
		t.Fatalf("expected not-started placeholder, got %+v", view.Placeholder)
	}
}

func TestDetailWatcherStopCancelsTimer(t *testing.T) {
	provider := &teststubs.StubProvider{Detail: matches.Match{Started: true}}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "1", nil, Options{Interval: time.Hour})

	w.Start(context.Background())
	if !w.Armed() {
		t.Fatalf("expected timer armed for live match")
	}

	w.Stop()
	w.Stop()
	if w.Armed() {
		t.Fatalf("expected timer cleared after stop")
	}
	w.Start(context.Background())
	if provider.Details.Load() != 1 {
		t.Fatalf("expected no reload after stop, got %d", provider.Details.Load())
	}
}

func TestDetailWatcherStopHaltsLiveLoop(t *testing.T) {
	provider := &teststubs.StubProvider{Detail: matches.Match{Started: true}}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "1", nil, Options{Interval: 2 * time.Millisecond})

	w.Start(context.Background())
	waitFor(t, func() bool { return renderer.DetailCount() >= 3 })
	w.Stop()

	time.Sleep(10 * time.Millisecond)
	settled := renderer.DetailCount()
	time.Sleep(20 * time.Millisecond)
	if renderer.DetailCount() != settled {
		t.Fatalf("expected renders to stop after Stop; before=%d after=%d", settled, renderer.DetailCount())
	}
}

func TestDetailWatcherFailureRendersPlaceholder(t *testing.T) {
	provider := &teststubs.StubProvider{Err: errors.New("not found")}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "9", nil, Options{Interval: time.Millisecond})
	defer w.Stop()

	w.Start(context.Background())

	view, ok := renderer.LastDetail()
	if !ok || view.ID != "9" || view.Placeholder == nil || view.Placeholder.Message != presenter.MsgLoadFailed {
		t.Fatalf("expected failure view, got %+v", view)
	}
	if w.Armed() {
		t.Fatalf("expected no timer after failure")
	}
}

func TestDetailWatcherContextCancelStopsReloads(t *testing.T) {
	provider := &teststubs.StubProvider{Detail: matches.Match{Started: true}}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "1", nil, Options{Interval: 2 * time.Millisecond})
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	time.Sleep(10 * time.Millisecond)
	calls := provider.Details.Load()
	time.Sleep(20 * time.Millisecond)
	if provider.Details.Load() != calls {
		t.Fatalf("expected no loads after context cancel")
	}
}

func TestDetailWatcherLiveMatchSurvivesTransientFailure(t *testing.T) {
	provider := &teststubs.StubProvider{Detail: matches.Match{Started: true, Innings: []matches.Innings{{Runs: 120, Overs: 18}}}}
	renderer := &teststubs.StubRenderer{}
	w := NewDetailWatcher(provider, renderer, "5", nil, Options{Interval: 3 * time.Millisecond})
	defer w.Stop()

	w.Start(context.Background())
	if renderer.DetailCount() != 1 {
		t.Fatalf("expected initial render, got %d", renderer.DetailCount())
	}

	provider.SetErr(errors.New("upstream 503"))
	failedFrom := provider.Details.Load()
	waitFor(t, func() bool { return provider.Details.Load() >= failedFrom+2 })
	if view, _ := renderer.LastDetail(); !view.Live || view.Placeholder != nil {
		t.Fatalf("expected last live view to stay on screen during failures, got %+v", view)
	}
	waitFor(t, w.Armed)

	rendered := renderer.DetailCount()
	provider.SetErr(nil)
	waitFor(t, func() bool { return renderer.DetailCount() > rendered })
	if view, _ := renderer.LastDetail(); view.ID != "5" || !view.Live {
		t.Fatalf("expected live view after recovery, got %+v", view)
	}
}
