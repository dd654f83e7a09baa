// Package viewport defines the scroll container measurement contract.
// The engine never reads the host directly; it consumes one immutable
// Metrics snapshot per accepted tick from a Source.
package viewport

import "errors"

// ErrUnavailable is returned by a Source that cannot report current
// metrics. The scheduler skips the tick entirely and retains prior
// progress values; no partial computation happens
var ErrUnavailable = errors.New("viewport metrics unavailable")

// Metrics is an immutable snapshot of the scroll container, taken once
// at the start of a tick's read phase and consumed by every computation
// in that tick
type Metrics struct {
	// ScrollOffset is the current scroll position in length units (>= 0)
	ScrollOffset float64

	// ContainerExtent is the total scrollable extent in length units (> 0)
	ContainerExtent float64

	// ViewportLength is the visible length of the container (> 0)
	ViewportLength float64
}

// Source supplies current best-known metrics on demand
// Accuracy contract: current as of the last observable scroll/resize event
type Source interface {
	Metrics() (Metrics, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func() (Metrics, error)

// Metrics implements Source
func (f SourceFunc) Metrics() (Metrics, error) {
	return f()
}

// ScrollableRange returns the maximum meaningful scroll offset
// Zero or negative when the content fits inside the viewport
func (m Metrics) ScrollableRange() float64 {
	return m.ContainerExtent - m.ViewportLength
}
