package refresh

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
)

// DetailRenderer receives the detail view after every load.
type DetailRenderer interface {
	RenderDetail(ctx context.Context, view presenter.DetailView)
}

// DetailFetcher loads one match by id.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, id string) (matches.Match, error)
}

// DetailWatcher keeps one match view fresh for a single viewer. It reloads on a one-shot
// timer that is re-armed only while the match is live.
type DetailWatcher struct {
	fetcher  DetailFetcher
	renderer DetailRenderer
	id       string
	interval time.Duration
	loc      *time.Location
	logger   *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	timer   *time.Timer
	started bool
	stopped bool
	// live is the state seen on the last successful load.
	live bool
}

// NewDetailWatcher builds a watcher for id. Options.Interval defaults to the dashboard interval.
func NewDetailWatcher(fetcher DetailFetcher, renderer DetailRenderer, id string, logger *slog.Logger, opts Options) *DetailWatcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &DetailWatcher{
		fetcher:  fetcher,
		renderer: renderer,
		id:       strings.TrimSpace(id),
		interval: interval,
		loc:      loc,
		logger:   logger,
	}
}

// ID returns the watched match id.
func (w *DetailWatcher) ID() string {
	return w.id
}

// Start loads and renders the match once, arming the next reload if it is live.
// An empty id renders the missing-id placeholder and arms nothing.
func (w *DetailWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.started = true
	if w.id == "" {
		w.mu.Unlock()
		w.render(ctx, presenter.MissingDetail())
		return
	}
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	w.load()
}

// Stop cancels the pending reload and any in-flight fetch. Safe to call more than once.
func (w *DetailWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
	}
}

// Armed reports whether a reload is scheduled.
func (w *DetailWatcher) Armed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

func (w *DetailWatcher) load() {
	w.mu.Lock()
	w.timer = nil
	ctx := w.ctx
	w.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	m, err := w.fetcher.FetchDetails(ctx, w.id)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			w.logWarn("match detail load failed", err)
		}
		w.mu.Lock()
		wasLive := w.live
		w.mu.Unlock()
		// A live match keeps its last view and retries on the next cycle.
		if wasLive {
			w.arm()
			return
		}
		w.render(ctx, presenter.DetailFailure(w.id))
		return
	}

	live := m.IsLive()
	w.mu.Lock()
	w.live = live
	w.mu.Unlock()

	if !w.render(ctx, presenter.Detail(m, w.loc)) {
		return
	}
	if live {
		w.arm()
	}
}

func (w *DetailWatcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.timer = time.AfterFunc(w.interval, w.load)
}

// render skips the view once the watcher has been stopped.
func (w *DetailWatcher) render(ctx context.Context, view presenter.DetailView) bool {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return false
	}
	if w.renderer != nil {
		w.renderer.RenderDetail(ctx, view)
	}
	return true
}

func (w *DetailWatcher) logWarn(msg string, err error) {
	logging.Warn(w.logger, msg, logging.FieldMatchID, w.id, "error", err)
}
