package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/scrollpace/engine"
	"github.com/lixenwraith/scrollpace/quality"
	"github.com/lixenwraith/scrollpace/viewport"
	"github.com/lixenwraith/scrollpace/window"
)

const sampleDoc = `
tick_interval: 8ms
device_hint: high
mode: indicator-only
windows:
  - id: hero-reveal
    start: 0px
    length: 120vh
    cap: 1400
  - id: deep-parallax
    start: 50vh
    length: 400vh
`

func TestParseFullDocument(t *testing.T) {
	cfg, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, Duration(8*time.Millisecond), cfg.TickInterval)
	assert.Equal(t, quality.TierHigh, cfg.Hint())
	assert.Equal(t, engine.ModeIndicatorOnly, cfg.SchedulerMode())

	require.Len(t, cfg.Windows, 2)
	assert.Equal(t, "hero-reveal", cfg.Windows[0].ID)
	assert.Equal(t, window.VH(120), cfg.Windows[0].Length)
	assert.Equal(t, 1400.0, cfg.Windows[0].Cap)
	assert.Equal(t, window.VH(50), cfg.Windows[1].Start)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`windows: []`))
	require.NoError(t, err)

	assert.Equal(t, Duration(0), cfg.TickInterval)
	assert.Equal(t, quality.TierMedium, cfg.Hint(), "absent hint defaults to the middle tier")
	assert.Equal(t, engine.ModeFull, cfg.SchedulerMode())
}

func TestParseRejectsDuplicateWindowIDs(t *testing.T) {
	doc := []byte(`
windows:
  - id: w
    start: 0px
    length: 10px
  - id: w
    start: 5px
    length: 10px
`)
	_, err := Parse(doc)
	assert.ErrorIs(t, err, window.ErrInvalidWindowSpec)
}

func TestParseRejectsBadDistance(t *testing.T) {
	doc := []byte(`
windows:
  - id: w
    start: 12qq
    length: 10px
`)
	_, err := Parse(doc)
	assert.ErrorIs(t, err, window.ErrInvalidWindowSpec)
}

func TestParseRejectsBadDuration(t *testing.T) {
	_, err := Parse([]byte(`tick_interval: fast`))
	assert.Error(t, err)
}

func TestApplyRegistersWindows(t *testing.T) {
	cfg, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	reg := window.NewRegistry()
	require.NoError(t, cfg.Apply(reg))
	assert.Equal(t, 2, reg.Len())

	resolved := reg.Resolve(viewport.Metrics{ViewportLength: 200})
	require.Len(t, resolved, 2)
	assert.Equal(t, 240.0, resolved[0].Length, "120vh at 200px viewport, under the cap")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pacing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Windows, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
