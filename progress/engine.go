// Package progress converts scroll offsets and resolved effect windows
// into clamped normalized progress values.
//
// Numeric policy: clamp is applied after the division, never before, so the
// value at the exact window boundary is exactly 0 or 1 even under
// floating-point rounding of the start offset. A window whose resolved
// length is <= 0 short-circuits to value=0, active=false — never NaN/Inf.
package progress

import (
	"github.com/lixenwraith/scrollpace/viewport"
	"github.com/lixenwraith/scrollpace/window"
)

// Effect is the normalized progress of one window at one tick
type Effect struct {
	WindowID string
	Value    float64 // In [0,1]
	Active   bool    // False when outside the visibility margin or inert
}

// Engine owns the last-known effect mapping
// Ownership: exclusively mutated by the scheduler's tick; consumers receive
// copies through the output sink and never mutate engine state
type Engine struct {
	last map[string]Effect
}

// NewEngine creates an engine with no computed values
func NewEngine() *Engine {
	return &Engine{last: make(map[string]Effect)}
}

// clamp01 bounds v to [0,1]; applied strictly after the division
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ComputeAll recomputes progress for every window in the active set and
// returns the full mapping
//
// Windows outside the active set retain their last value with Active set
// false (consumers may freeze or fade). Degenerate windows always yield
// value=0, active=false. Windows no longer present are dropped.
//
// Pure given identical metrics, windows, and active set: calling twice
// yields identical output
func (e *Engine) ComputeAll(m viewport.Metrics, windows []window.Resolved, active map[string]bool) map[string]Effect {
	next := make(map[string]Effect, len(windows))

	for _, w := range windows {
		switch {
		case w.Degenerate():
			next[w.ID] = Effect{WindowID: w.ID, Value: 0, Active: false}

		case active[w.ID]:
			v := clamp01((m.ScrollOffset - w.Start) / w.Length)
			next[w.ID] = Effect{WindowID: w.ID, Value: v, Active: true}

		default:
			prev, ok := e.last[w.ID]
			if !ok {
				prev = Effect{WindowID: w.ID}
			}
			prev.Active = false
			next[w.ID] = prev
		}
	}

	e.last = next
	return e.Snapshot()
}

// ComputePage returns the whole-page indicator in [0,1]
// Zero when the content fits inside the viewport (denominator <= 0)
// Informational only; interaction pacing must not read it
func ComputePage(m viewport.Metrics) float64 {
	scrollable := m.ScrollableRange()
	if scrollable <= 0 {
		return 0
	}
	return clamp01(m.ScrollOffset / scrollable)
}

// Freeze snaps every tracked window to its resting value (0, inactive)
// and returns the resulting mapping. Used once on reduced-motion entry
func (e *Engine) Freeze() map[string]Effect {
	for id := range e.last {
		e.last[id] = Effect{WindowID: id, Value: 0, Active: false}
	}
	return e.Snapshot()
}

// Snapshot returns a copy of the last-known mapping
func (e *Engine) Snapshot() map[string]Effect {
	out := make(map[string]Effect, len(e.last))
	for id, eff := range e.last {
		out[id] = eff
	}
	return out
}
