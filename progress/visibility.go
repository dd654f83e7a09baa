package progress

import (
	"github.com/lixenwraith/scrollpace/viewport"
	"github.com/lixenwraith/scrollpace/window"
)

// ActiveSet selects the windows admitted to per-tick recomputation
//
// A window is active when its resolved [Start, Start+Length] interval
// intersects [scrollOffset - margin, scrollOffset + viewportLength + margin].
// Margin scales with quality tier: wide at high tier to pre-warm effects,
// near-zero at low tier to minimize recomputation
//
// This is the sole admission control on per-tick cost, so it stays interval
// comparison only; it runs before the engine pass every tick
func ActiveSet(windows []window.Resolved, m viewport.Metrics, margin float64) map[string]bool {
	lo := m.ScrollOffset - margin
	hi := m.ScrollOffset + m.ViewportLength + margin

	active := make(map[string]bool, len(windows))
	for _, w := range windows {
		if w.Degenerate() {
			continue // Inert, never recomputed
		}
		if w.Start <= hi && w.End() >= lo {
			active[w.ID] = true
		}
	}
	return active
}
