// Package window defines effect windows: bounded distance intervals over
// which one effect's progress advances from 0 to 1, expressed in pixels or
// viewport-relative units and resolved against current viewport metrics.
package window

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/scrollpace/viewport"
)

// ErrInvalidWindowSpec marks a malformed registration, rejected
// synchronously before the spec enters the registry
var ErrInvalidWindowSpec = errors.New("invalid window spec")

// Unit is the measurement unit of a distance expression
type Unit int

const (
	// UnitPx is an absolute length unit
	UnitPx Unit = iota

	// UnitVH is one hundredth of the current viewport length
	// (CSS dvh convention: 120vh at a 200px viewport resolves to 240px)
	UnitVH
)

// String returns the unit suffix used in compact distance strings
func (u Unit) String() string {
	if u == UnitVH {
		return "vh"
	}
	return "px"
}

// Distance is a unit-tagged scalar resolved against viewport metrics
type Distance struct {
	Value float64
	Unit  Unit
}

// Px is a convenience constructor for absolute distances
func Px(v float64) Distance { return Distance{Value: v, Unit: UnitPx} }

// VH is a convenience constructor for viewport-relative distances
func VH(v float64) Distance { return Distance{Value: v, Unit: UnitVH} }

// Resolve converts the distance to absolute length units
// Pure: identical metrics yield identical results
func (d Distance) Resolve(m viewport.Metrics) float64 {
	if d.Unit == UnitVH {
		return d.Value / 100 * m.ViewportLength
	}
	return d.Value
}

// String renders the compact form accepted by ParseDistance
func (d Distance) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + d.Unit.String()
}

// ParseDistance parses compact distance strings: "120vh", "350px", or a
// bare number treated as px
func ParseDistance(s string) (Distance, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Distance{}, fmt.Errorf("%w: empty distance", ErrInvalidWindowSpec)
	}

	unit := UnitPx
	switch {
	case strings.HasSuffix(raw, "vh"):
		unit = UnitVH
		raw = strings.TrimSuffix(raw, "vh")
	case strings.HasSuffix(raw, "px"):
		raw = strings.TrimSuffix(raw, "px")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Distance{}, fmt.Errorf("%w: bad distance %q", ErrInvalidWindowSpec, s)
	}
	return Distance{Value: v, Unit: unit}, nil
}

// UnmarshalYAML accepts either a compact string ("120vh") or a bare number
func (d *Distance) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: distance must be a scalar", ErrInvalidWindowSpec)
	}
	parsed, err := ParseDistance(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Spec is one effect window definition prior to resolution
type Spec struct {
	ID     string   `yaml:"id"`
	Start  Distance `yaml:"start"`
	Length Distance `yaml:"length"`

	// Cap bounds the resolved length in absolute units; 0 = no cap
	// Applied dynamically on every resolution so resize re-clamps
	Cap float64 `yaml:"cap,omitempty"`
}

// Validate checks the spec is well-formed: non-empty ID, non-negative
// coefficients, positive cap when present
func (s Spec) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidWindowSpec)
	}
	if s.Start.Value < 0 {
		return fmt.Errorf("%w: %s: negative start", ErrInvalidWindowSpec, s.ID)
	}
	if s.Length.Value < 0 {
		return fmt.Errorf("%w: %s: negative length", ErrInvalidWindowSpec, s.ID)
	}
	if s.Cap < 0 {
		return fmt.Errorf("%w: %s: non-positive cap", ErrInvalidWindowSpec, s.ID)
	}
	return nil
}

// Resolved is a window with start and length in absolute units
// A resolved length <= 0 makes the window inert (progress always 0),
// never an error
type Resolved struct {
	ID     string
	Start  float64
	Length float64
}

// End returns the absolute offset at which progress reaches 1
func (r Resolved) End() float64 { return r.Start + r.Length }

// Degenerate reports whether the window is inert
func (r Resolved) Degenerate() bool { return r.Length <= 0 }

// Resolve converts the spec to absolute units under the given metrics
// Pure and idempotent: identical metrics yield identical results
func (s Spec) Resolve(m viewport.Metrics) Resolved {
	length := s.Length.Resolve(m)
	if s.Cap > 0 && length > s.Cap {
		length = s.Cap
	}
	return Resolved{
		ID:     s.ID,
		Start:  s.Start.Resolve(m),
		Length: length,
	}
}
