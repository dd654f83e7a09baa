package engine

import (
	"time"

	"github.com/lixenwraith/scrollpace/parameter"
	"github.com/lixenwraith/scrollpace/quality"
)

// governor selects the quality tier from observed tick cost
//
// Keeps a trailing moving average over the last CostWindowSize ticks and
// requires CostStreakLength consecutive over/under-threshold measurements
// before transitioning, so a single slow tick never downgrades the tier
//
// Single-threaded: observed only from the scheduler's tick
type governor struct {
	tier quality.Tier

	window [parameter.CostWindowSize]time.Duration
	idx    int
	filled int
	total  time.Duration // Running sum of the window

	overStreak  int
	underStreak int
}

func newGovernor(initial quality.Tier) *governor {
	return &governor{tier: initial}
}

// observe records one tick cost and returns the tier to apply on the next
// tick, plus whether it changed
func (g *governor) observe(cost time.Duration) (quality.Tier, bool) {
	g.total -= g.window[g.idx]
	g.window[g.idx] = cost
	g.total += cost
	g.idx = (g.idx + 1) % parameter.CostWindowSize
	if g.filled < parameter.CostWindowSize {
		g.filled++
	}

	avg := g.total / time.Duration(g.filled)

	switch {
	case avg > parameter.HighCostThreshold:
		g.overStreak++
		g.underStreak = 0
	case avg < parameter.LowCostThreshold:
		g.underStreak++
		g.overStreak = 0
	default:
		g.overStreak = 0
		g.underStreak = 0
	}

	if g.overStreak >= parameter.CostStreakLength && g.tier > quality.TierLow {
		g.tier = g.tier.Downgrade()
		g.overStreak = 0
		g.underStreak = 0
		return g.tier, true
	}

	if g.underStreak >= parameter.CostStreakLength && g.tier < quality.TierHigh {
		g.tier = g.tier.Upgrade()
		g.overStreak = 0
		g.underStreak = 0
		return g.tier, true
	}

	return g.tier, false
}

// average returns the current trailing average tick cost
func (g *governor) average() time.Duration {
	if g.filled == 0 {
		return 0
	}
	return g.total / time.Duration(g.filled)
}
