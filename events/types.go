package events

import "time"

// SignalType identifies an externally raised scheduler signal
type SignalType int

const (
	// SignalScroll reports a scroll offset change
	// Trigger: host scroll observer | Coalesced: yes (position re-read at tick)
	SignalScroll SignalType = iota

	// SignalResize reports a viewport or container geometry change
	// Trigger: host resize observer | Coalesced: yes (windows re-resolve)
	SignalResize

	// SignalTime requests a recomputation without a metrics change
	// Trigger: host animation timer, demo render loop
	SignalTime

	// SignalReducedMotion toggles the Frozen state
	// Flag: true = freeze (one final resting-value frame), false = thaw
	SignalReducedMotion

	// SignalMode switches between full and indicator-only computation
	// Flag: true = indicator-only (page progress only), false = full
	SignalMode

	// SignalWindowsChanged notes a registry re-registration
	// The pending tick is never cancelled; it resolves whatever registry
	// state is current at firing time
	SignalWindowsChanged
)

// String returns the signal name for logs
func (t SignalType) String() string {
	switch t {
	case SignalScroll:
		return "scroll"
	case SignalResize:
		return "resize"
	case SignalTime:
		return "time"
	case SignalReducedMotion:
		return "reduced-motion"
	case SignalMode:
		return "mode"
	case SignalWindowsChanged:
		return "windows-changed"
	default:
		return "unknown"
	}
}

// Signal is one externally raised scheduler input
type Signal struct {
	Type      SignalType
	Flag      bool // Meaning depends on Type (see constants)
	Timestamp time.Time
}
