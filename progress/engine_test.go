package progress

import (
	"math"
	"reflect"
	"testing"

	"github.com/lixenwraith/scrollpace/viewport"
	"github.com/lixenwraith/scrollpace/window"
)

func metricsAt(offset float64) viewport.Metrics {
	return viewport.Metrics{
		ScrollOffset:    offset,
		ContainerExtent: 10000,
		ViewportLength:  200,
	}
}

func allActive(windows []window.Resolved) map[string]bool {
	active := make(map[string]bool, len(windows))
	for _, w := range windows {
		active[w.ID] = true
	}
	return active
}

// TestProgressBoundaryExactness verifies value is exactly 0 at the window
// start and exactly 1 at the window end, with no floating-point drift
func TestProgressBoundaryExactness(t *testing.T) {
	windows := []window.Resolved{{ID: "w", Start: 333.25, Length: 777.5}}

	out := NewEngine().ComputeAll(metricsAt(333.25), windows, allActive(windows))
	if out["w"].Value != 0 {
		t.Errorf("Expected exactly 0 at window start, got %v", out["w"].Value)
	}

	out = NewEngine().ComputeAll(metricsAt(333.25+777.5), windows, allActive(windows))
	if out["w"].Value != 1 {
		t.Errorf("Expected exactly 1 at window end, got %v", out["w"].Value)
	}

	// Decimal inputs that round in binary may overshoot the end boundary;
	// clamp-after-divide still pins the result to exactly 1
	messy := []window.Resolved{{ID: "m", Start: 0.1, Length: 0.2}}
	out = NewEngine().ComputeAll(metricsAt(0.1+0.2), messy, allActive(messy))
	if out["m"].Value != 1 {
		t.Errorf("Expected clamp to pin end boundary to 1, got %v", out["m"].Value)
	}
}

// TestProgressClampRange verifies values never leave [0,1] for any offset
func TestProgressClampRange(t *testing.T) {
	windows := []window.Resolved{{ID: "w", Start: 500, Length: 1000}}
	eng := NewEngine()

	offsets := []float64{0, 100, 499.999, 500, 750, 1499.999, 1500, 1500.001, 99999}
	for _, off := range offsets {
		out := eng.ComputeAll(metricsAt(off), windows, allActive(windows))
		v := out["w"].Value
		if v < 0 || v > 1 {
			t.Errorf("Expected value in [0,1] at offset %v, got %v", off, v)
		}
	}
}

// TestProgressViewportRelativeExample checks the reference scenario: a
// 1200vh window at a 200px viewport resolves to 2400px, so offset 1200px
// yields progress 0.5
func TestProgressViewportRelativeExample(t *testing.T) {
	spec := window.Spec{ID: "hero", Start: window.Px(0), Length: window.VH(1200)}
	m := metricsAt(1200)

	resolved := spec.Resolve(m)
	if resolved.Length != 2400 {
		t.Fatalf("Expected resolved length 2400, got %v", resolved.Length)
	}

	out := NewEngine().ComputeAll(m, []window.Resolved{resolved}, map[string]bool{"hero": true})
	if out["hero"].Value != 0.5 {
		t.Errorf("Expected progress 0.5, got %v", out["hero"].Value)
	}
}

// TestDegenerateWindowIsInert verifies a non-positive resolved length
// always yields value=0, active=false, never NaN or Inf
func TestDegenerateWindowIsInert(t *testing.T) {
	windows := []window.Resolved{
		{ID: "zero", Start: 100, Length: 0},
		{ID: "negative", Start: 100, Length: -50},
	}
	out := NewEngine().ComputeAll(metricsAt(500), windows, allActive(windows))

	for _, id := range []string{"zero", "negative"} {
		eff := out[id]
		if eff.Value != 0 {
			t.Errorf("Expected inert value 0 for %s, got %v", id, eff.Value)
		}
		if eff.Active {
			t.Errorf("Expected %s inactive", id)
		}
		if math.IsNaN(eff.Value) || math.IsInf(eff.Value, 0) {
			t.Errorf("Expected finite value for %s, got %v", id, eff.Value)
		}
	}
}

// TestInactiveWindowRetainsLastValue verifies windows outside the active
// set keep their previous value with the active flag cleared
func TestInactiveWindowRetainsLastValue(t *testing.T) {
	windows := []window.Resolved{{ID: "w", Start: 0, Length: 1000}}
	eng := NewEngine()

	out := eng.ComputeAll(metricsAt(400), windows, map[string]bool{"w": true})
	if out["w"].Value != 0.4 {
		t.Fatalf("Expected 0.4 while active, got %v", out["w"].Value)
	}

	// Same window excluded from the active set: value frozen, flag cleared
	out = eng.ComputeAll(metricsAt(900), windows, map[string]bool{})
	if out["w"].Value != 0.4 {
		t.Errorf("Expected retained value 0.4, got %v", out["w"].Value)
	}
	if out["w"].Active {
		t.Error("Expected inactive flag for excluded window")
	}
}

// TestComputeAllIdempotence verifies identical inputs produce identical
// outputs across repeated calls
func TestComputeAllIdempotence(t *testing.T) {
	windows := []window.Resolved{
		{ID: "a", Start: 0, Length: 1000},
		{ID: "b", Start: 500, Length: 0},
		{ID: "c", Start: 2000, Length: 300},
	}
	m := metricsAt(650)
	active := map[string]bool{"a": true, "c": true}

	eng := NewEngine()
	first := eng.ComputeAll(m, windows, active)
	second := eng.ComputeAll(m, windows, active)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical outputs, got %v then %v", first, second)
	}
}

// TestRemovedWindowDropped verifies deregistered windows disappear from
// the mapping on the next computation
func TestRemovedWindowDropped(t *testing.T) {
	eng := NewEngine()
	eng.ComputeAll(metricsAt(100),
		[]window.Resolved{{ID: "old", Start: 0, Length: 1000}},
		map[string]bool{"old": true})

	out := eng.ComputeAll(metricsAt(100),
		[]window.Resolved{{ID: "new", Start: 0, Length: 1000}},
		map[string]bool{"new": true})

	if _, ok := out["old"]; ok {
		t.Error("Expected removed window to be dropped from mapping")
	}
	if _, ok := out["new"]; !ok {
		t.Error("Expected new window in mapping")
	}
}

// TestPageProgressBounds verifies the page indicator endpoints are exact
func TestPageProgressBounds(t *testing.T) {
	m := viewport.Metrics{ContainerExtent: 5000, ViewportLength: 800}

	m.ScrollOffset = 0
	if got := ComputePage(m); got != 0 {
		t.Errorf("Expected page 0 at top, got %v", got)
	}

	m.ScrollOffset = 5000 - 800
	if got := ComputePage(m); got != 1 {
		t.Errorf("Expected page 1 at bottom, got %v", got)
	}

	m.ScrollOffset = (5000 - 800) / 2
	if got := ComputePage(m); got != 0.5 {
		t.Errorf("Expected page 0.5 at midpoint, got %v", got)
	}
}

// TestPageProgressDegenerateExtent verifies content shorter than the
// viewport reports 0, not NaN
func TestPageProgressDegenerateExtent(t *testing.T) {
	m := viewport.Metrics{ScrollOffset: 10, ContainerExtent: 100, ViewportLength: 200}
	if got := ComputePage(m); got != 0 {
		t.Errorf("Expected page 0 when content fits viewport, got %v", got)
	}
}

// TestFreezeSnapsToRest verifies freezing resets every tracked window to
// value 0, inactive
func TestFreezeSnapsToRest(t *testing.T) {
	windows := []window.Resolved{
		{ID: "a", Start: 0, Length: 1000},
		{ID: "b", Start: 100, Length: 400},
	}
	eng := NewEngine()
	eng.ComputeAll(metricsAt(300), windows, allActive(windows))

	frozen := eng.Freeze()
	for id, eff := range frozen {
		if eff.Value != 0 || eff.Active {
			t.Errorf("Expected %s at rest (0, inactive), got (%v, %v)", id, eff.Value, eff.Active)
		}
	}
}
