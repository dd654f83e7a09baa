package quality

// Tier is the discrete performance/fidelity level the scheduler selects
// Mutated only by the scheduler's cost governor, read by filter and engine
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// String returns the lowercase tier name used in logs and flags
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Downgrade returns the next lower tier, clamped at TierLow
func (t Tier) Downgrade() Tier {
	if t > TierLow {
		return t - 1
	}
	return TierLow
}

// Upgrade returns the next higher tier, clamped at TierHigh
func (t Tier) Upgrade() Tier {
	if t < TierHigh {
		return t + 1
	}
	return TierHigh
}

// ParseHint maps a coarse device capability hint to an initial tier
// Unknown hints seed TierMedium so the governor converges from the middle
func ParseHint(hint string) Tier {
	switch hint {
	case "low", "constrained":
		return TierLow
	case "high", "desktop":
		return TierHigh
	default:
		return TierMedium
	}
}
