// Package config loads and validates the controller configuration.
// The YAML file is the primary surface; command-line flags override
// individual fields after loading.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veraxus/deskcycle-controller/internal/gpio"
	"github.com/veraxus/deskcycle-controller/internal/logic"
)

// Variant selects the sensor arrangement.
type Variant string

const (
	// VariantSingle is one switch closing once per wheel revolution.
	// No direction detection capability exists; motion reads forward.
	VariantSingle Variant = "single"

	// VariantDual is two hall sensors a few millimeters apart whose
	// activation order encodes rotation direction.
	VariantDual Variant = "dual"
)

// Config is the full controller configuration.
type Config struct {
	Variant Variant `yaml:"variant"`

	// GPIO wiring
	Chip   string `yaml:"chip"`
	PinA   int    `yaml:"pin_a"`
	PinB   int    `yaml:"pin_b"`   // ignored in the single variant
	PinLED int    `yaml:"pin_led"` // activity LED; negative disables

	// Pipeline timing
	PollIntervalMS          int     `yaml:"poll_interval_ms"`
	DebounceWindowMS        int     `yaml:"debounce_window_ms"`
	StopTimeoutMS           int     `yaml:"stop_timeout_ms"`
	FastThresholdMS         int     `yaml:"fast_threshold_ms"`
	HysteresisMargin        float64 `yaml:"hysteresis_margin"`
	SimultaneityToleranceMS int     `yaml:"simultaneity_tolerance_ms"`

	// Telemetry and status
	Broker    string `yaml:"broker"`    // MQTT broker URL; empty disables telemetry
	Heartbeat string `yaml:"heartbeat"` // heartbeat interval, e.g. "15m"; empty disables
	HTTPAddr  string `yaml:"http"`      // status server address; empty disables
}

// Default returns the built-in configuration, tuned for the standard
// DeskCycle wiring and empirically chosen timing constants.
func Default() Config {
	return Config{
		Variant:                 VariantDual,
		Chip:                    "gpiochip0",
		PinA:                    gpio.DefaultPinA,
		PinB:                    gpio.DefaultPinB,
		PinLED:                  -1,
		PollIntervalMS:          10,
		DebounceWindowMS:        50,
		StopTimeoutMS:           800,
		FastThresholdMS:         300,
		HysteresisMargin:        1.25,
		SimultaneityToleranceMS: 2,
		Broker:                  "",
		Heartbeat:               "15m",
		HTTPAddr:                ":8080",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce meaningful
// classification. Called once at startup; a failure is fatal.
func (c Config) Validate() error {
	if c.Variant != VariantSingle && c.Variant != VariantDual {
		return fmt.Errorf("variant must be %q or %q, got %q", VariantSingle, VariantDual, c.Variant)
	}
	if c.FastThresholdMS <= 0 {
		return fmt.Errorf("fast_threshold_ms must be positive, got %d", c.FastThresholdMS)
	}
	if c.HysteresisMargin <= 1.0 {
		return fmt.Errorf("hysteresis_margin must be greater than 1.0, got %g", c.HysteresisMargin)
	}
	if c.DebounceWindowMS <= 0 {
		return fmt.Errorf("debounce_window_ms must be positive, got %d", c.DebounceWindowMS)
	}
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMS)
	}
	if c.PollIntervalMS >= c.DebounceWindowMS {
		return fmt.Errorf("poll_interval_ms (%d) must be smaller than debounce_window_ms (%d)",
			c.PollIntervalMS, c.DebounceWindowMS)
	}
	if c.StopTimeoutMS <= c.FastThresholdMS {
		return fmt.Errorf("stop_timeout_ms (%d) must exceed fast_threshold_ms (%d)",
			c.StopTimeoutMS, c.FastThresholdMS)
	}
	if c.SimultaneityToleranceMS < 0 {
		return fmt.Errorf("simultaneity_tolerance_ms must not be negative, got %d", c.SimultaneityToleranceMS)
	}
	if c.Variant == VariantDual && c.PinA == c.PinB {
		return fmt.Errorf("pin_a and pin_b must differ, both are %d", c.PinA)
	}
	if c.Heartbeat != "" {
		if _, err := time.ParseDuration(c.Heartbeat); err != nil {
			return fmt.Errorf("heartbeat: %w", err)
		}
	}
	return nil
}

// PollInterval returns the poll period.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// HeartbeatInterval returns the parsed heartbeat interval; zero disables.
func (c Config) HeartbeatInterval() time.Duration {
	if c.Heartbeat == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Heartbeat)
	if err != nil {
		return 0
	}
	return d
}

// Pipeline converts the validated configuration into pipeline constants.
func (c Config) Pipeline() logic.Config {
	return logic.Config{
		DebounceWindow:        time.Duration(c.DebounceWindowMS) * time.Millisecond,
		StopTimeout:           time.Duration(c.StopTimeoutMS) * time.Millisecond,
		FastThreshold:         time.Duration(c.FastThresholdMS) * time.Millisecond,
		HysteresisMargin:      c.HysteresisMargin,
		SimultaneityTolerance: time.Duration(c.SimultaneityToleranceMS) * time.Millisecond,
		DualSensor:            c.Variant == VariantDual,
	}
}
