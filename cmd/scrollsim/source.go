package main

import (
	"sync"

	"github.com/lixenwraith/scrollpace/viewport"
)

// extentFactor sizes the synthetic document relative to the viewport
const extentFactor = 8

// docSource is the demo's metrics source: a synthetic document scrolled by
// keyboard input. Length units are terminal rows
type docSource struct {
	mu       sync.Mutex
	offset   float64
	extent   float64
	viewport float64
}

func newDocSource(viewportRows float64) *docSource {
	return &docSource{
		extent:   viewportRows * extentFactor,
		viewport: viewportRows,
	}
}

// Metrics implements viewport.Source
func (d *docSource) Metrics() (viewport.Metrics, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return viewport.Metrics{
		ScrollOffset:    d.offset,
		ContainerExtent: d.extent,
		ViewportLength:  d.viewport,
	}, nil
}

// scrollBy moves the offset, clamped to the scrollable range
func (d *docSource) scrollBy(delta float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offset = clampOffset(d.offset+delta, d.extent-d.viewport)
}

// scrollTo jumps to an absolute offset
func (d *docSource) scrollTo(offset float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offset = clampOffset(offset, d.extent-d.viewport)
}

// scrollToEnd jumps to the bottom of the document
func (d *docSource) scrollToEnd() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offset = d.extent - d.viewport
	if d.offset < 0 {
		d.offset = 0
	}
}

// resize updates the viewport length, keeping the document proportional
// and the offset in range
func (d *docSource) resize(viewportRows float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = viewportRows
	d.extent = viewportRows * extentFactor
	d.offset = clampOffset(d.offset, d.extent-d.viewport)
}

func clampOffset(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
