package parameter

import "time"

// Scheduler Timing
const (
	// TickInterval is the target coordination point interval (~60Hz)
	TickInterval = 16 * time.Millisecond

	// IdleWakeTimeout bounds how long the loop sleeps with no pending signal
	// before re-checking stop; keeps shutdown latency low without busy-wait
	IdleWakeTimeout = 250 * time.Millisecond
)

// Signal Queue Limits
const (
	// SignalQueueSize is the fixed capacity of the signal ring buffer
	// Far larger than any realistic burst between two ticks
	SignalQueueSize = 256

	// SignalBufferMask is the bitmask for fast modulo operations (256 - 1)
	SignalBufferMask = 255
)
