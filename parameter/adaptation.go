package parameter

import "time"

// Cost Governor — trailing average tier selection
const (
	// CostWindowSize is the number of tick durations in the trailing average
	CostWindowSize = 20

	// CostStreakLength is the consecutive over/under-threshold measurements
	// required before a tier transition; absorbs single-tick spikes
	CostStreakLength = 5

	// HighCostThreshold triggers downgrade pressure when the trailing
	// average tick cost exceeds it (budget is one 16ms frame)
	HighCostThreshold = 12 * time.Millisecond

	// LowCostThreshold triggers upgrade pressure when the trailing average
	// stays under it
	LowCostThreshold = 4 * time.Millisecond
)

// Frame Skipping
const (
	// LowTierAdmitEvery admits one tick in N at TierLow; skipped ticks
	// coalesce signals but do not recompute progress
	LowTierAdmitEvery = 3
)

// Visibility Margins — fraction of viewport length added on both sides of
// the visible interval; larger margin pre-warms effects at higher tiers
const (
	MarginFactorHigh   = 1.0
	MarginFactorMedium = 0.25
	MarginFactorLow    = 0.02
)
