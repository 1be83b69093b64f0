// Package engine runs dashboard fetch-render cycles and the auto-refresh
// timer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tonhe/invdash/internal/activity"
	"github.com/tonhe/invdash/internal/chart"
	"github.com/tonhe/invdash/internal/inventory"
	"github.com/tonhe/invdash/internal/notify"
)

var (
	// ErrInvalidInterval is returned for negative auto-refresh intervals.
	ErrInvalidInterval = errors.New("auto-refresh interval must not be negative")
	// ErrCycleSuperseded is returned by a cycle that finished after a newer
	// one had started. Its results were dropped.
	ErrCycleSuperseded = errors.New("refresh superseded by a newer cycle")
	// ErrClosed is returned once Close has been called.
	ErrClosed = errors.New("controller closed")
	// ErrMissingSource is returned by NewController without a Source.
	ErrMissingSource = errors.New("engine: source is required")
	// ErrMissingRenderer is returned by NewController without a Renderer.
	ErrMissingRenderer = errors.New("engine: renderer is required")
)

// User-facing notification texts.
const (
	MsgUpdated         = "Dashboard updated"
	MsgAutoRefreshOff  = "Auto-refresh disabled"
	msgAutoRefreshOn   = "Auto-refresh every %s seconds"
	msgLoadErrorPrefix = "Error loading data: "
)

// DefaultMaxHistory is the number of cycle records kept when Options leaves
// MaxHistory at zero.
const DefaultMaxHistory = 120

const subscriberBuffer = 16

// Options wires a Controller to its collaborators. Source and Renderer are
// required; the rest have usable defaults.
type Options struct {
	Source     Source
	Renderer   Renderer
	Charts     ChartSink
	Activity   *activity.Renderer
	Notifier   Notifier
	Logger     *zap.Logger
	MaxHistory int
}

// Controller owns the refresh state of one dashboard: the cycle sequence,
// the loading flag and the auto-refresh timer.
type Controller struct {
	src      Source
	render   Renderer
	charts   ChartSink
	rows     *activity.Renderer
	notifier Notifier
	log      *zap.Logger
	history  *RingBuffer[CycleRecord]

	liveTimers atomic.Int32

	mu          sync.Mutex
	seq         uint64
	loading     bool
	interval    time.Duration
	cancelCycle context.CancelFunc
	lastSuccess time.Time
	lastErr     error
	last        *Dashboard
	closed      bool
	baseCtx     context.Context
	baseCancel  context.CancelFunc

	// timerMu serializes re-arming. Ticks never take it, so stop can wait
	// for a tick that is mid-refresh.
	timerMu sync.Mutex
	timer   *autoTimer

	// applyMu orders the start and the settlement of cycles so that only
	// the latest one touches the renderer.
	applyMu sync.Mutex

	subsMu     sync.Mutex
	subs       map[int]chan Event
	nextSub    int
	subsClosed bool
}

// NewController validates opts and returns an idle Controller.
func NewController(opts Options) (*Controller, error) {
	if opts.Source == nil {
		return nil, ErrMissingSource
	}
	if opts.Renderer == nil {
		return nil, ErrMissingRenderer
	}
	if opts.Charts == nil {
		opts.Charts = chart.NewAdapter(&chart.MemoryFactory{})
	}
	if opts.Activity == nil {
		opts.Activity = activity.NewRenderer(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	base, cancel := context.WithCancel(context.Background())
	return &Controller{
		src:        opts.Source,
		render:     opts.Renderer,
		charts:     opts.Charts,
		rows:       opts.Activity,
		notifier:   opts.Notifier,
		log:        opts.Logger.Named("engine"),
		history:    NewRingBuffer[CycleRecord](opts.MaxHistory),
		baseCtx:    base,
		baseCancel: cancel,
		subs:       make(map[int]chan Event),
	}, nil
}

// TriggerRefresh runs one fetch-render cycle and blocks until it settles.
// Starting a cycle cancels the one before it; a cycle that is no longer the
// latest when it settles returns ErrCycleSuperseded without rendering.
func (c *Controller) TriggerRefresh(ctx context.Context) error {
	seq, cctx, cancel, err := c.beginCycle(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	started := time.Now()
	c.log.Debug("refresh cycle started", zap.Uint64("seq", seq))
	c.emit(Event{Kind: CycleStarted, Seq: seq})

	data, ferr := c.fetch(cctx)
	return c.settle(ctx, seq, started, data, ferr)
}

func (c *Controller) beginCycle(ctx context.Context) (uint64, context.Context, context.CancelFunc, error) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, nil, nil, ErrClosed
	}
	if c.cancelCycle != nil {
		c.cancelCycle()
	}
	cctx, cancel := context.WithCancel(ctx)
	c.seq++
	seq := c.seq
	c.cancelCycle = cancel
	c.loading = true
	c.mu.Unlock()

	c.render.SetLoading(true)
	return seq, cctx, cancel, nil
}

type payload struct {
	stats  *inventory.DashboardStats
	charts *inventory.ChartDataset
	feed   *inventory.ActivityFeed
}

// fetch issues the three requests concurrently and waits for all of them.
// Any failure fails the whole fetch.
func (c *Controller) fetch(ctx context.Context) (*payload, error) {
	var p payload
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.src.Stats(gctx)
		p.stats = s
		return err
	})
	g.Go(func() error {
		ds, err := c.src.EquipmentChart(gctx)
		p.charts = ds
		return err
	})
	g.Go(func() error {
		f, err := c.src.RecentActivity(gctx)
		p.feed = f
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if p.stats == nil || p.charts == nil || p.feed == nil {
		return nil, fmt.Errorf("%w: empty payload", inventory.ErrDecode)
	}
	return &p, nil
}

func (c *Controller) settle(parent context.Context, seq uint64, started time.Time, data *payload, ferr error) error {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	rec := CycleRecord{Seq: seq, Started: started, Duration: time.Since(started), Err: ferr}

	c.mu.Lock()
	latest := seq == c.seq && !c.closed
	c.mu.Unlock()

	if !latest {
		rec.Discarded = true
		c.history.Add(rec)
		c.log.Debug("discarding superseded refresh", zap.Uint64("seq", seq), zap.Error(ferr))
		c.emit(Event{Kind: CycleDiscarded, Seq: seq, Err: ferr})
		return ErrCycleSuperseded
	}

	if ferr != nil && parent.Err() != nil {
		// The caller gave up on this cycle. Nothing is shown, but as the
		// latest cycle it still owns the loading flag.
		rec.Discarded = true
		c.history.Add(rec)
		c.clearLoading()
		c.log.Debug("refresh cancelled", zap.Uint64("seq", seq), zap.Error(ferr))
		c.emit(Event{Kind: CycleDiscarded, Seq: seq, Err: ferr})
		return parent.Err()
	}

	if ferr == nil {
		ferr = c.apply(data, started)
		rec.Err = ferr
	}
	c.history.Add(rec)

	if ferr != nil {
		c.fail(seq, ferr)
		return ferr
	}

	c.clearLoading()
	c.notifier.Notify(MsgUpdated, notify.Success)
	c.log.Info("dashboard refreshed",
		zap.Uint64("seq", seq),
		zap.Duration("duration", rec.Duration))
	c.emit(Event{Kind: CycleSucceeded, Seq: seq})
	return nil
}

// apply pushes a successful payload to the charts and the renderer. Charts
// go first so that a chart failure leaves every panel untouched.
func (c *Controller) apply(p *payload, started time.Time) error {
	c.charts.Initialize()
	if err := c.charts.Update(*p.charts); err != nil {
		return fmt.Errorf("updating charts: %w", err)
	}

	var maintenance, tickets rowBuffer
	c.rows.Render(*p.feed, &maintenance, &tickets)

	d := Dashboard{
		Cards:       BuildCards(*p.stats),
		Alerts:      BuildAlerts(p.stats.Alerts),
		Maintenance: maintenance.rows,
		Tickets:     tickets.rows,
		Stats:       *p.stats,
		Charts:      *p.charts,
		UpdatedAt:   started,
	}
	c.render.Render(d)

	c.mu.Lock()
	c.last = &d
	c.lastSuccess = started
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// rowBuffer collects the rows of one list for the Dashboard value.
type rowBuffer struct{ rows []activity.Row }

func (b *rowBuffer) SetRows(rows []activity.Row) { b.rows = rows }

func (c *Controller) fail(seq uint64, err error) {
	c.render.ShowFallback(Fallback{
		Title:   FallbackTitle,
		Message: FallbackMessage,
		Err:     err,
	})
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	c.clearLoading()

	c.notifier.Notify(msgLoadErrorPrefix+err.Error(), notify.Danger)
	c.log.Error("dashboard refresh failed", zap.Uint64("seq", seq), zap.Error(err))
	c.emit(Event{Kind: CycleFailed, Seq: seq, Err: err})
}

func (c *Controller) clearLoading() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
	c.render.SetLoading(false)
}

// SetAutoRefresh replaces the auto-refresh timer. Zero disables it. The
// previous timer has fully stopped by the time the new one starts.
func (c *Controller) SetAutoRefresh(interval time.Duration) error {
	if interval < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	c.timerMu.Lock()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.timerMu.Unlock()
		return ErrClosed
	}
	c.interval = interval
	base := c.baseCtx
	c.mu.Unlock()

	if c.timer != nil {
		c.timer.stop()
		c.timer = nil
	}
	if interval > 0 {
		c.timer = startAutoTimer(base, interval, &c.liveTimers, c.onTick)
	}
	c.timerMu.Unlock()

	if interval > 0 {
		c.notifier.Notify(fmt.Sprintf(msgAutoRefreshOn, formatSeconds(interval)), notify.Info)
	} else {
		c.notifier.Notify(MsgAutoRefreshOff, notify.Warning)
	}
	c.log.Info("auto-refresh changed", zap.Duration("interval", interval))
	c.emit(Event{Kind: AutoRefreshChanged, Interval: interval})
	return nil
}

func (c *Controller) onTick(ctx context.Context) {
	err := c.TriggerRefresh(ctx)
	if err != nil && !errors.Is(err, ErrCycleSuperseded) && !errors.Is(err, context.Canceled) {
		c.log.Debug("auto-refresh tick failed", zap.Error(err))
	}
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// ToggleChartType shows the category chart as bars when useBar is true and
// in proportional form otherwise. No data is fetched.
func (c *Controller) ToggleChartType(useBar bool) {
	kind := chart.KindProportional
	if useBar {
		kind = chart.KindBar
	}
	c.charts.SetCategoryKind(kind)
	c.log.Debug("category chart kind changed", zap.Stringer("kind", kind))
	c.emit(Event{Kind: ChartKindChanged, Chart: kind})
}

// Subscribe returns a channel of controller events and a function that
// unsubscribes and closes it. Events are dropped when the channel is full.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	c.subsMu.Lock()
	if c.subsClosed {
		c.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subsMu.Lock()
			defer c.subsMu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// emit sends ev to every subscriber without blocking.
func (c *Controller) emit(ev Event) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// State returns a copy of the refresh bookkeeping.
func (c *Controller) State() RefreshState {
	kind := c.charts.CategoryKind()
	c.mu.Lock()
	defer c.mu.Unlock()
	return RefreshState{
		AutoRefreshInterval: c.interval,
		Loading:             c.loading,
		Seq:                 c.seq,
		ChartKind:           kind,
		LastSuccess:         c.lastSuccess,
		LastError:           c.lastErr,
	}
}

// History returns recorded cycles, oldest first.
func (c *Controller) History() []CycleRecord {
	return c.history.All()
}

// Last returns the most recently applied dashboard.
func (c *Controller) Last() (Dashboard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Dashboard{}, false
	}
	return *c.last, true
}

// LiveTimers reports how many auto-refresh goroutines are running.
func (c *Controller) LiveTimers() int {
	return int(c.liveTimers.Load())
}

// Close stops the timer, cancels any cycle in flight and closes every
// subscription. Later calls do nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancelCycle != nil {
		c.cancelCycle()
	}
	c.baseCancel()
	c.mu.Unlock()

	c.timerMu.Lock()
	if c.timer != nil {
		c.timer.stop()
		c.timer = nil
	}
	c.timerMu.Unlock()

	c.subsMu.Lock()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.subsClosed = true
	c.subsMu.Unlock()
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, notify.Severity) string { return "" }
