// Package refresh drives the periodic reload of the application snapshot and the
// per-viewer live refresh of a single match.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/metrics"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
)

const (
	defaultInterval = 30 * time.Second
	// readyFailureLimit is the number of consecutive failed cycles after which the controller reports not ready.
	readyFailureLimit = 3
)

// State is the controller's position in its load cycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Renderer receives the dashboard view after every cycle.
type Renderer interface {
	RenderDashboard(ctx context.Context, view presenter.DashboardView)
}

// Store holds the published snapshot.
type Store interface {
	Snapshot() matches.Snapshot
	Replace(snap matches.Snapshot)
}

// Options tunes the controller. Zero values fall back to defaults.
type Options struct {
	Interval time.Duration
	Location *time.Location
}

// Controller reloads the current and upcoming lists on an interval and republishes the snapshot.
type Controller struct {
	provider providers.MatchProvider
	store    Store
	renderer Renderer
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	inFlight atomic.Bool
	cycles   sync.WaitGroup

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	state    State
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	State               State
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the controller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

// New constructs a Controller. renderer, logger and recorder may be nil.
func New(provider providers.MatchProvider, store Store, renderer Renderer, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Controller {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Controller{
		provider: provider,
		store:    store,
		renderer: renderer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		loc:      loc,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
		state:    StateIdle,
	}
}

// Start runs an initial cycle and then one per interval until ctx is done or Stop is called.
func (c *Controller) Start(ctx context.Context) {
	c.startMu.Lock()
	if c.started {
		c.startMu.Unlock()
		return
	}
	c.started = true
	ticker := time.NewTicker(c.interval)
	c.ticker = ticker
	c.startMu.Unlock()

	go func() {
		defer close(c.exited)
		c.logInfo("refresh controller started", slog.Int64(logging.FieldDurationMS, c.interval.Milliseconds()))
		c.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				c.stopTicker()
				c.logInfo("refresh controller stopped")
				return
			case <-c.done:
				c.stopTicker()
				c.logInfo("refresh controller stopped")
				return
			case <-ticker.C:
				c.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it and any triggered cycle to finish.
// No cycle starts after Stop returns.
func (c *Controller) Stop(ctx context.Context) error {
	c.startMu.Lock()
	c.stopOnce.Do(func() {
		close(c.done)
	})
	started := c.started
	c.startMu.Unlock()
	c.stopTicker()

	finished := make(chan struct{})
	go func() {
		if started {
			<-c.exited
		}
		c.cycles.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs one cycle synchronously. It returns false without doing anything when a
// cycle is already in flight or the controller has been stopped.
func (c *Controller) Refresh(ctx context.Context) bool {
	if !c.acquire() {
		return false
	}
	defer c.release()
	c.cycle(ctx)
	return true
}

// Trigger starts one cycle in the background. It reports false when a cycle is already in flight.
func (c *Controller) Trigger(ctx context.Context) bool {
	if !c.acquire() {
		return false
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer c.release()
		c.cycle(ctx)
	}()
	return true
}

// View builds the dashboard for the current snapshot and state.
func (c *Controller) View() presenter.DashboardView {
	snap := c.store.Snapshot()
	if c.State() == StateFailed {
		return presenter.DashboardFailure(snap, c.now())
	}
	return presenter.Dashboard(snap, c.now(), c.loc)
}

// State returns the current cycle state.
func (c *Controller) State() State {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.state
}

// Status returns a snapshot of the controller's recent health.
func (c *Controller) Status() Status {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	s := c.status
	s.State = c.state
	return s
}

// Location is the display location used for time labels.
func (c *Controller) Location() *time.Location {
	return c.loc
}

// acquire claims the in-flight slot. It is checked against Stop under startMu so that
// Stop either sees the cycle in cycles or the cycle sees done closed.
func (c *Controller) acquire() bool {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	select {
	case <-c.done:
		return false
	default:
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logDebug("refresh already in flight, ignoring request")
		return false
	}
	c.cycles.Add(1)
	return true
}

func (c *Controller) release() {
	c.inFlight.Store(false)
	c.cycles.Done()
}

func (c *Controller) cycle(ctx context.Context) {
	start := time.Now()
	c.setState(StateLoading)
	c.recordAttempt(c.now())

	prev := c.store.Snapshot()
	c.store.Replace(prev.WithLoading(true))

	today, upcoming, err := c.fetchBoth(ctx)
	if c.metrics != nil {
		c.metrics.RecordRefreshCycle(time.Since(start), err)
	}

	if err != nil {
		failed := prev.WithLoading(false)
		c.store.Replace(failed)
		c.recordFailure(err)
		c.setState(StateFailed)
		c.logError("refresh cycle failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		c.render(ctx, presenter.DashboardFailure(failed, c.now()))
		return
	}

	at := c.now()
	snap := matches.NewSnapshot(today, upcoming, at)
	c.store.Replace(snap)
	c.recordSuccess(at)
	c.setState(StateReady)
	c.logInfo("refresh cycle completed",
		logging.FieldCount, len(snap.Today)+len(snap.Upcoming),
		logging.FieldLive, len(snap.Live),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	c.render(ctx, presenter.Dashboard(snap, at, c.loc))
}

// fetchBoth issues both list requests concurrently and waits for both to finish.
// One failing does not cancel the other.
func (c *Controller) fetchBoth(ctx context.Context) ([]matches.Match, []matches.Match, error) {
	var (
		g        errgroup.Group
		today    []matches.Match
		upcoming []matches.Match
	)
	g.Go(func() error {
		list, err := c.provider.FetchCurrent(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", providers.ResourceCurrent, err)
		}
		today = list
		return nil
	})
	g.Go(func() error {
		list, err := c.provider.FetchUpcoming(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", providers.ResourceUpcoming, err)
		}
		upcoming = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return today, upcoming, nil
}

func (c *Controller) render(ctx context.Context, view presenter.DashboardView) {
	if c.renderer != nil {
		c.renderer.RenderDashboard(ctx, view)
	}
}

func (c *Controller) stopTicker() {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	if c.ticker != nil {
		c.ticker.Stop()
	}
}

func (c *Controller) setState(s State) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.state = s
}

func (c *Controller) recordAttempt(at time.Time) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status.LastAttempt = at
}

func (c *Controller) recordSuccess(at time.Time) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status.ConsecutiveFailures = 0
	c.status.LastError = ""
	c.status.LastSuccess = at
}

func (c *Controller) recordFailure(err error) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status.ConsecutiveFailures++
	if err != nil {
		c.status.LastError = err.Error()
	}
}

func (c *Controller) logInfo(msg string, args ...any) {
	logging.Info(c.logger, msg, args...)
}

func (c *Controller) logDebug(msg string, args ...any) {
	logging.Debug(c.logger, msg, args...)
}

func (c *Controller) logError(msg string, err error, attrs ...any) {
	logging.Error(c.logger, msg, err, attrs...)
}
