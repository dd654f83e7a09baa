package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/scrollpace/quality"
)

// tierCue plays a short tone when the quality tier changes: lower pitch
// for lower tiers, so a degrading page is audible without watching the HUD
type tierCue struct {
	sampleRate beep.SampleRate
	ready      bool
}

func newTierCue() *tierCue {
	c := &tierCue{sampleRate: beep.SampleRate(44100)}
	if err := speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/10)); err == nil {
		c.ready = true
	}
	return c
}

// play emits the cue for the given tier; no-op if the device failed to open
func (c *tierCue) play(t quality.Tier) {
	if !c.ready {
		return
	}

	freq := 440.0
	switch t {
	case quality.TierMedium:
		freq = 660.0
	case quality.TierHigh:
		freq = 880.0
	}

	sine, err := generators.SineTone(c.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sampleRate.N(60*time.Millisecond), sine))
}

func (c *tierCue) close() {
	if c.ready {
		speaker.Close()
	}
}
