// Package config loads the YAML document that declares effect windows and
// engine tuning for a page.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/scrollpace/engine"
	"github.com/lixenwraith/scrollpace/quality"
	"github.com/lixenwraith/scrollpace/window"
)

// Duration wraps time.Duration with YAML support for "16ms" style values
type Duration time.Duration

// UnmarshalYAML parses a Go duration string
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar")
	}
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("bad duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is one page's pacing declaration
type Config struct {
	// TickInterval overrides the default coordination point pacing
	TickInterval Duration `yaml:"tick_interval,omitempty"`

	// DeviceHint seeds the initial quality tier: low, medium, high
	DeviceHint string `yaml:"device_hint,omitempty"`

	// Mode selects full or indicator-only computation
	Mode string `yaml:"mode,omitempty"`

	// Windows are the effect window definitions
	Windows []window.Spec `yaml:"windows"`
}

// Parse decodes and validates a YAML document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks every window spec and rejects duplicate IDs
// Invalid configuration surfaces here, at load time, never at tick time
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Windows))
	for _, spec := range c.Windows {
		if err := spec.Validate(); err != nil {
			return err
		}
		if seen[spec.ID] {
			return fmt.Errorf("%w: duplicate id %q", window.ErrInvalidWindowSpec, spec.ID)
		}
		seen[spec.ID] = true
	}
	return nil
}

// Hint returns the configured initial quality tier
func (c *Config) Hint() quality.Tier {
	return quality.ParseHint(c.DeviceHint)
}

// SchedulerMode returns the configured computation mode
func (c *Config) SchedulerMode() engine.Mode {
	return engine.ParseMode(c.Mode)
}

// Apply registers every configured window into the registry
func (c *Config) Apply(reg *window.Registry) error {
	for _, spec := range c.Windows {
		if _, err := reg.Register(spec); err != nil {
			return err
		}
	}
	return nil
}
