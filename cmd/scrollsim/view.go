package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scrollpace/engine"
	"github.com/lixenwraith/scrollpace/render"
)

// bandPalette gives each document band a base color; effects modulate it
var bandPalette = []tcell.Color{
	tcell.NewRGBColor(80, 120, 200),
	tcell.NewRGBColor(90, 180, 120),
	tcell.NewRGBColor(200, 140, 70),
	tcell.NewRGBColor(170, 90, 180),
	tcell.NewRGBColor(200, 80, 90),
}

var bandRunes = []rune{'░', '▒', '▓', '█', '▒'}

const (
	bandHeight    = 6
	parallaxDepth = 10
	panelWidth    = 36
)

// effectValue reads one effect's value from the frame, with a fallback for
// configs that define their own window IDs
func effectValue(frame render.Frame, id string, fallback float64) float64 {
	if e, ok := frame.Effect(id); ok {
		return e.Value
	}
	return fallback
}

// draw renders one frame: document on the left, effect bars and HUD on the
// right. All visuals derive from the published frame, never from engine
// internals
func draw(screen tcell.Screen, source *docSource, frame render.Frame, stats engine.Stats) {
	w, h := screen.Size()
	if w < 20 || h < 6 {
		return
	}
	screen.Clear()

	m, err := source.Metrics()
	if err != nil {
		return
	}

	panelW := panelWidth
	if panelW > w/2 {
		panelW = w / 2
	}
	docW := w - panelW - 1
	docH := h - 2

	reveal := effectValue(frame, "hero-reveal", 1)
	light := effectValue(frame, "section-light", 1)
	parallax := effectValue(frame, "deep-parallax", 0)
	glow := effectValue(frame, "footer-glow", 0)

	// Document: banded content scrolled to the current offset
	top := int(m.ScrollOffset)
	for y := 0; y < docH; y++ {
		abs := top + y
		band := (abs / bandHeight) % len(bandPalette)
		base := bandPalette[band]

		// Lighting scales brightness; footer glow lifts the lower bands
		brightness := 0.25 + 0.75*light
		if band >= len(bandPalette)-2 {
			brightness += 0.5 * glow
		}
		if brightness > 1 {
			brightness = 1
		}
		r, g, b := base.RGB()
		color := tcell.NewRGBColor(
			int32(float64(r)*brightness),
			int32(float64(g)*brightness),
			int32(float64(b)*brightness),
		)
		style := tcell.StyleDefault.Foreground(color)

		// Parallax shifts the pattern phase of the back layer
		shift := int(parallax * parallaxDepth)

		// Reveal gates how much of the row is drawn
		rowW := docW
		if abs < bandHeight*2 {
			rowW = int(float64(docW) * reveal)
		}

		for x := 0; x < rowW; x++ {
			idx := band
			if (x+shift)%4 == 0 {
				idx = (band + 1) % len(bandRunes)
			}
			screen.SetContent(x, y, bandRunes[idx], nil, style)
		}
	}

	// Page indicator: vertical bar on the far right edge
	filled := int(frame.Page * float64(docH))
	for y := 0; y < docH; y++ {
		ch := '│'
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		if y < filled {
			ch = '┃'
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
		}
		screen.SetContent(w-1, y, ch, nil, style)
	}

	drawPanel(screen, frame, docW+1, panelW-1, docH)
	drawHUD(screen, frame, stats, w, h)

	screen.Show()
}

// drawPanel lists every effect with its progress bar
func drawPanel(screen tcell.Screen, frame render.Frame, x0, width, height int) {
	header := " effects"
	if frame.Frozen {
		header = " effects [FROZEN]"
	} else if frame.PageOnly {
		header = " effects [indicator-only]"
	}
	putString(screen, x0, 0, header, tcell.StyleDefault.Bold(true))

	barW := width - 22
	if barW < 4 {
		barW = 4
	}

	row := 2
	for _, eff := range frame.Effects {
		if row >= height {
			break
		}

		style := tcell.StyleDefault
		marker := '*'
		if !eff.Active {
			style = style.Foreground(tcell.ColorGray)
			marker = '·'
		}

		name := eff.WindowID
		if len(name) > 14 {
			name = name[:14]
		}
		putString(screen, x0, row, fmt.Sprintf("%c %-14s", marker, name), style)

		fill := int(eff.Value * float64(barW))
		for i := 0; i < barW; i++ {
			ch := '░'
			if i < fill {
				ch = '█'
			}
			screen.SetContent(x0+17+i, row, ch, nil, style)
		}
		putString(screen, x0+18+barW, row, fmt.Sprintf("%3.0f%%", eff.Value*100), style)
		row++
	}
}

// drawHUD prints scheduler state and key bindings on the bottom rows
func drawHUD(screen tcell.Screen, frame render.Frame, stats engine.Stats, w, h int) {
	status := fmt.Sprintf(" tier=%s state=%s page=%3.0f%% ticks=%d skipped=%d coalesced=%d avg=%s",
		stats.Tier, stats.State, frame.Page*100,
		stats.Ticks, stats.SkippedLowTier+stats.SkippedNoMetrics,
		stats.CoalescedSignals, stats.AverageCost)
	putString(screen, 0, h-2, pad(status, w), tcell.StyleDefault.Reverse(true))

	help := " j/k scroll  d/u page  g/G ends  m reduced-motion  i indicator  q quit"
	putString(screen, 0, h-1, pad(help, w), tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	col := x
	for _, ch := range s {
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
}

func pad(s string, w int) string {
	for len(s) < w {
		s += " "
	}
	return s
}
