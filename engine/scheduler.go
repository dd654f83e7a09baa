// Package engine owns the single update loop that converts raw scroll
// signals into published progress frames.
//
// All computation runs on one goroutine, one tick at a time. A tick is a
// strict read-compute-write cycle: metrics are snapshotted once, windows
// resolve and progress computes against that snapshot, then the frame is
// published. No two ticks' phases interleave; suspension happens only
// between ticks.
package engine

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"github.com/lixenwraith/scrollpace/core"
	"github.com/lixenwraith/scrollpace/events"
	"github.com/lixenwraith/scrollpace/parameter"
	"github.com/lixenwraith/scrollpace/progress"
	"github.com/lixenwraith/scrollpace/quality"
	"github.com/lixenwraith/scrollpace/render"
	"github.com/lixenwraith/scrollpace/viewport"
	"github.com/lixenwraith/scrollpace/window"
)

// State is the scheduler tick state
type State int32

const (
	// StateIdle means no tick is pending or running
	StateIdle State = iota

	// StateScheduled means a coordination point is requested; further
	// signals coalesce into it
	StateScheduled

	// StateRunning means a tick is executing its read or write phase
	StateRunning

	// StateFrozen means reduced motion is asserted: effect values rest at
	// 0 and only informational page updates are published
	StateFrozen
)

// String returns the state name for logs
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Mode selects how much of the engine runs per tick
type Mode int32

const (
	// ModeFull computes per-effect progress and the page indicator
	ModeFull Mode = iota

	// ModeIndicatorOnly computes the page indicator only; the host's
	// declarative timeline drives per-effect timing independently
	ModeIndicatorOnly
)

// ParseMode maps the configuration value to a Mode; default is full
func ParseMode(s string) Mode {
	if s == "indicator-only" || s == "indicator" {
		return ModeIndicatorOnly
	}
	return ModeFull
}

// Stats is a point-in-time snapshot of scheduler counters
type Stats struct {
	Ticks            uint64
	SkippedLowTier   uint64
	SkippedNoMetrics uint64
	CoalescedSignals uint64
	Published        uint64
	Tier             quality.Tier
	State            State
	AverageCost      time.Duration
}

// Options configures a Scheduler
type Options struct {
	Source   viewport.Source  // Required
	Registry *window.Registry // Required
	Sink     render.Sink      // Required

	Logger       logr.Logger   // Defaults to logr.Discard()
	Hint         quality.Tier  // Initial tier before cost measurements accumulate
	Mode         Mode          // Defaults to ModeFull
	TickInterval time.Duration // Defaults to parameter.TickInterval
	Clock        Clock         // Defaults to MonotonicClock
}

// Scheduler coalesces input signals into single-flight ticks and adapts
// the quality tier from observed tick cost
type Scheduler struct {
	source   viewport.Source
	registry *window.Registry
	sink     render.Sink
	log      logr.Logger
	clock    Clock

	tickInterval time.Duration

	engine *progress.Engine
	queue  *events.Queue
	gov    *governor

	state  atomic.Int32
	tier   atomic.Int32
	mode   atomic.Int32
	frozen atomic.Bool

	// admitSeq gates low-tier frame skipping; tick-loop local, no atomics
	admitSeq uint64

	// lastPage keeps the indicator across metrics failures (float64 bits)
	lastPage atomic.Uint64

	tickSeq          atomic.Uint64
	skippedLowTier   atomic.Uint64
	skippedNoMetrics atomic.Uint64
	coalescedSignals atomic.Uint64
	published        atomic.Uint64
	avgCostNanos     atomic.Int64

	wake     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler; Source, Registry, and Sink are required
func NewScheduler(opts Options) (*Scheduler, error) {
	if opts.Source == nil {
		return nil, errors.New("scheduler requires a metrics source")
	}
	if opts.Registry == nil {
		return nil, errors.New("scheduler requires a window registry")
	}
	if opts.Sink == nil {
		return nil, errors.New("scheduler requires an output sink")
	}

	if opts.TickInterval <= 0 {
		opts.TickInterval = parameter.TickInterval
	}
	if opts.Clock == nil {
		opts.Clock = NewMonotonicClock()
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	s := &Scheduler{
		source:       opts.Source,
		registry:     opts.Registry,
		sink:         opts.Sink,
		log:          opts.Logger,
		clock:        opts.Clock,
		tickInterval: opts.TickInterval,
		engine:       progress.NewEngine(),
		queue:        events.NewQueue(),
		gov:          newGovernor(opts.Hint),
		wake:         make(chan struct{}, 1),
		stopChan:     make(chan struct{}),
	}
	s.tier.Store(int32(opts.Hint))
	s.mode.Store(int32(opts.Mode))
	s.state.Store(int32(StateIdle))
	return s, nil
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		// core.Go restores the host before reporting a crashing loop
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// Notify pushes a signal and requests the next coordination point
// Non-blocking; bursts between two ticks coalesce into one recomputation
func (s *Scheduler) Notify(sig events.Signal) {
	s.queue.Push(sig)
	s.state.CompareAndSwap(int32(StateIdle), int32(StateScheduled))
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// OnScroll reports a scroll position change
func (s *Scheduler) OnScroll() {
	s.Notify(events.Signal{Type: events.SignalScroll, Timestamp: s.clock.Now()})
}

// OnResize reports a viewport geometry change
func (s *Scheduler) OnResize() {
	s.Notify(events.Signal{Type: events.SignalResize, Timestamp: s.clock.Now()})
}

// SetReducedMotion raises or clears the reduced-motion signal
func (s *Scheduler) SetReducedMotion(on bool) {
	s.Notify(events.Signal{Type: events.SignalReducedMotion, Flag: on, Timestamp: s.clock.Now()})
}

// SetMode switches between full and indicator-only computation
func (s *Scheduler) SetMode(m Mode) {
	s.Notify(events.Signal{Type: events.SignalMode, Flag: m == ModeIndicatorOnly, Timestamp: s.clock.Now()})
}

// State returns the current scheduler state
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Tier returns the quality tier applied to the next tick
func (s *Scheduler) Tier() quality.Tier {
	return quality.Tier(s.tier.Load())
}

// Mode returns the current computation mode
func (s *Scheduler) Mode() Mode {
	return Mode(s.mode.Load())
}

// Stats returns a snapshot of operational counters
func (s *Scheduler) Stats() Stats {
	return Stats{
		Ticks:            s.tickSeq.Load(),
		SkippedLowTier:   s.skippedLowTier.Load(),
		SkippedNoMetrics: s.skippedNoMetrics.Load(),
		CoalescedSignals: s.coalescedSignals.Load(),
		Published:        s.published.Load(),
		Tier:             s.Tier(),
		State:            s.State(),
		AverageCost:      time.Duration(s.avgCostNanos.Load()),
	}
}

// loop waits for coalesced wakes and paces ticks to the tick interval
func (s *Scheduler) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-s.wake:
		}

		if !s.frozen.Load() {
			s.state.Store(int32(StateRunning))
		}

		s.runTick()

		if s.frozen.Load() {
			s.state.Store(int32(StateFrozen))
		} else {
			s.state.Store(int32(StateIdle))
		}

		// Pace: at most one tick per interval; signals raised during the
		// pause coalesce into the single buffered wake slot
		timer.Reset(s.tickInterval)
		select {
		case <-timer.C:
		case <-s.stopChan:
			return
		}
	}
}

// runTick executes one coordination point
func (s *Scheduler) runTick() {
	start := s.clock.Now()

	// Drain coalesced signals. Control signals always apply, even on
	// ticks that frame-skipping will reject
	sigs := s.queue.Consume()
	if n := len(sigs); n > 1 {
		s.coalescedSignals.Add(uint64(n - 1))
	}

	justFrozen := false
	for _, sig := range sigs {
		switch sig.Type {
		case events.SignalReducedMotion:
			if sig.Flag && !s.frozen.Load() {
				s.frozen.Store(true)
				justFrozen = true
			} else if !sig.Flag && s.frozen.Load() {
				s.frozen.Store(false)
				s.log.Info("reduced motion cleared, resuming")
			}
		case events.SignalMode:
			if sig.Flag {
				s.mode.Store(int32(ModeIndicatorOnly))
			} else {
				s.mode.Store(int32(ModeFull))
			}
		}
	}

	if s.frozen.Load() {
		s.runFrozenTick(justFrozen)
		return
	}

	tier := s.Tier()

	// Frame skipping: at low tier only every Nth tick recomputes; skipped
	// ticks leave all progress values untouched
	if tier == quality.TierLow {
		s.admitSeq++
		if s.admitSeq%parameter.LowTierAdmitEvery != 0 {
			s.skippedLowTier.Add(1)
			return
		}
	}

	// Read phase: one immutable metrics snapshot for the whole tick
	m, err := s.source.Metrics()
	if err != nil {
		// Tick skipped entirely; prior values retained, nothing partial
		s.skippedNoMetrics.Add(1)
		s.log.V(1).Info("tick skipped", "reason", "metrics unavailable", "err", err)
		return
	}

	tick := s.tickSeq.Add(1)
	frame := render.Frame{
		Tick: tick,
		Tier: tier,
		Page: progress.ComputePage(m),
	}
	s.lastPage.Store(math.Float64bits(frame.Page))

	if s.Mode() == ModeIndicatorOnly {
		// Host platform drives per-effect timing; publish indicator only
		frame.PageOnly = true
		frame.Effects = s.effectsInSpecOrder(s.engine.Snapshot())
	} else {
		resolved := s.registry.Resolve(m)
		active := progress.ActiveSet(resolved, m, marginFor(tier, m.ViewportLength))
		mapping := s.engine.ComputeAll(m, resolved, active)
		frame.Effects = effectsInOrder(resolved, mapping)
	}

	// Write phase: single authoritative delivery, overwrite not merge
	s.sink.Publish(frame)
	s.published.Add(1)

	// Governance reacts to slowness after the fact; a new tier applies
	// from the next tick onward
	cost := s.clock.Now().Sub(start)
	if next, changed := s.gov.observe(cost); changed {
		s.tier.Store(int32(next))
		s.log.Info("quality tier changed", "tier", next.String(), "avgCost", s.gov.average().String())
	}
	s.avgCostNanos.Store(int64(s.gov.average()))
}

// runFrozenTick handles ticks while reduced motion is asserted
// On entry it publishes one final frame with every window at its resting
// value; afterwards only informational page updates go out
func (s *Scheduler) runFrozenTick(entering bool) {
	m, err := s.source.Metrics()

	page := math.Float64frombits(s.lastPage.Load())
	if err == nil {
		page = progress.ComputePage(m)
		s.lastPage.Store(math.Float64bits(page))
	}

	if entering {
		mapping := s.engine.Freeze()
		frame := render.Frame{
			Tick:    s.tickSeq.Add(1),
			Tier:    s.Tier(),
			Page:    page,
			Frozen:  true,
			Effects: s.effectsInSpecOrder(mapping),
		}
		s.sink.Publish(frame)
		s.published.Add(1)
		s.log.Info("reduced motion asserted, effects frozen at rest")
		return
	}

	if err != nil {
		s.skippedNoMetrics.Add(1)
		return
	}

	frame := render.Frame{
		Tick:     s.tickSeq.Add(1),
		Tier:     s.Tier(),
		Page:     page,
		Frozen:   true,
		PageOnly: true,
		Effects:  s.effectsInSpecOrder(s.engine.Snapshot()),
	}
	s.sink.Publish(frame)
	s.published.Add(1)
}

// marginFor scales the visibility margin with the quality tier
func marginFor(t quality.Tier, viewportLength float64) float64 {
	switch t {
	case quality.TierHigh:
		return parameter.MarginFactorHigh * viewportLength
	case quality.TierMedium:
		return parameter.MarginFactorMedium * viewportLength
	default:
		return parameter.MarginFactorLow * viewportLength
	}
}

// effectsInOrder flattens the mapping into resolved-window order
func effectsInOrder(resolved []window.Resolved, mapping map[string]progress.Effect) []progress.Effect {
	out := make([]progress.Effect, 0, len(resolved))
	for _, w := range resolved {
		if eff, ok := mapping[w.ID]; ok {
			out = append(out, eff)
		}
	}
	return out
}

// effectsInSpecOrder flattens the mapping into registration order without
// resolving windows (used when this tick did not resolve)
func (s *Scheduler) effectsInSpecOrder(mapping map[string]progress.Effect) []progress.Effect {
	specs := s.registry.Specs()
	out := make([]progress.Effect, 0, len(specs))
	for _, spec := range specs {
		if eff, ok := mapping[spec.ID]; ok {
			out = append(out, eff)
		}
	}
	return out
}
