// Package render defines the write-only boundary between the pacing engine
// and whatever turns progress values into pixels.
package render

import (
	"sync/atomic"

	"github.com/lixenwraith/scrollpace/progress"
	"github.com/lixenwraith/scrollpace/quality"
)

// Frame is the authoritative output of one accepted tick
// Deliveries overwrite, never merge: each frame is the complete current
// state. Effects are value copies; mutating them has no effect upstream
type Frame struct {
	Tick uint64
	Tier quality.Tier

	// Page is the whole-page indicator in [0,1]
	Page float64

	// PageOnly marks indicator-only frames (native timeline mode, or page
	// updates published while frozen); Effects carries last-known values
	PageOnly bool

	// Frozen marks frames published after a reduced-motion freeze
	Frozen bool

	// Effects holds per-window progress in registration order
	Effects []progress.Effect
}

// Effect returns the progress entry for a window ID
func (f Frame) Effect(id string) (progress.Effect, bool) {
	for _, e := range f.Effects {
		if e.WindowID == id {
			return e, true
		}
	}
	return progress.Effect{}, false
}

// Sink receives one frame per accepted tick
// Publish runs inside the scheduler's write phase and must not block
type Sink interface {
	Publish(Frame)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Frame)

// Publish implements Sink
func (f SinkFunc) Publish(frame Frame) { f(frame) }

// LatestSink is a single-slot overwrite mailbox for polling consumers
// A new frame replaces the old unconsumed one; consumers always see the
// freshest state, never a backlog
type LatestSink struct {
	latest    atomic.Pointer[Frame]
	published atomic.Uint64
}

// NewLatestSink creates an empty mailbox
func NewLatestSink() *LatestSink {
	return &LatestSink{}
}

// Publish implements Sink
func (s *LatestSink) Publish(frame Frame) {
	s.latest.Store(&frame)
	s.published.Add(1)
}

// Latest returns the most recent frame, false if nothing published yet
func (s *LatestSink) Latest() (Frame, bool) {
	p := s.latest.Load()
	if p == nil {
		return Frame{}, false
	}
	return *p, true
}

// Published returns the total number of frames delivered
func (s *LatestSink) Published() uint64 {
	return s.published.Load()
}
