package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
)

// StubProvider is a test double for providers.MatchProvider.
type StubProvider struct {
	mu       sync.Mutex
	Current  []matches.Match
	Upcoming []matches.Match
	Detail   matches.Match
	Err      error
	// DetailSeq, when set, is served one entry per FetchDetails call; the last entry repeats.
	DetailSeq []matches.Match
	Block     chan struct{}
	Calls     atomic.Int32
	Details   atomic.Int32
	Notify    chan struct{}
}

// FetchCurrent returns the configured current list and error while tracking calls.
func (s *StubProvider) FetchCurrent(ctx context.Context) ([]matches.Match, error) {
	s.notify()
	s.Calls.Add(1)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Current, s.Err
}

// FetchUpcoming returns the configured upcoming list and error.
func (s *StubProvider) FetchUpcoming(ctx context.Context) ([]matches.Match, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Upcoming, s.Err
}

// FetchDetails returns the configured detail (or the next entry of DetailSeq) stamped with id.
func (s *StubProvider) FetchDetails(ctx context.Context, id string) (matches.Match, error) {
	_ = ctx
	n := int(s.Details.Add(1))
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return matches.Match{}, s.Err
	}
	m := s.Detail
	if len(s.DetailSeq) > 0 {
		idx := n - 1
		if idx >= len(s.DetailSeq) {
			idx = len(s.DetailSeq) - 1
		}
		m = s.DetailSeq[idx]
	}
	m.ID = id
	return m, nil
}

// SetErr swaps the configured error under the stub's lock.
func (s *StubProvider) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

func (s *StubProvider) notify() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
}

func (s *StubProvider) wait(ctx context.Context) error {
	if s.Block == nil {
		return nil
	}
	select {
	case <-s.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StubRenderer records every view it is asked to render.
type StubRenderer struct {
	mu         sync.Mutex
	Dashboards []presenter.DashboardView
	Details    []presenter.DetailView
	Rendered   chan struct{}
}

// RenderDashboard records the dashboard view.
func (r *StubRenderer) RenderDashboard(ctx context.Context, view presenter.DashboardView) {
	_ = ctx
	r.mu.Lock()
	r.Dashboards = append(r.Dashboards, view)
	r.mu.Unlock()
	r.signal()
}

// RenderDetail records the detail view.
func (r *StubRenderer) RenderDetail(ctx context.Context, view presenter.DetailView) {
	_ = ctx
	r.mu.Lock()
	r.Details = append(r.Details, view)
	r.mu.Unlock()
	r.signal()
}

// DashboardCount returns how many dashboards have been rendered.
func (r *StubRenderer) DashboardCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Dashboards)
}

// DetailCount returns how many detail views have been rendered.
func (r *StubRenderer) DetailCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Details)
}

// LastDashboard returns the most recent dashboard view.
func (r *StubRenderer) LastDashboard() (presenter.DashboardView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Dashboards) == 0 {
		return presenter.DashboardView{}, false
	}
	return r.Dashboards[len(r.Dashboards)-1], true
}

// LastDetail returns the most recent detail view.
func (r *StubRenderer) LastDetail() (presenter.DetailView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Details) == 0 {
		return presenter.DetailView{}, false
	}
	return r.Details[len(r.Details)-1], true
}

func (r *StubRenderer) signal() {
	if r.Rendered == nil {
		return
	}
	select {
	case r.Rendered <- struct{}{}:
	default:
	}
}
