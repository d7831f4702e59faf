package sim

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SettingsBundle holds unified simulation settings, loadable from a YAML
// file. Nil pointer fields mean "not set in YAML" — they do not override
// the defaults or flags. String fields use empty string for "not set".
type SettingsBundle struct {
	Profile     string           `yaml:"profile"`
	Thresholds  ThresholdsConfig `yaml:"thresholds"`
	Faults      FaultsConfig     `yaml:"faults"`
	MaxRows     int              `yaml:"max_rows"`
	TickSeconds float64          `yaml:"tick_seconds"`
}

// ThresholdsConfig holds alert threshold overrides.
type ThresholdsConfig struct {
	TempHigh *float64 `yaml:"temp_high"`
	FuelLow  *float64 `yaml:"fuel_low"`
	RPMHigh  *float64 `yaml:"rpm_high"`
}

// FaultsConfig holds fault-injection toggles.
type FaultsConfig struct {
	HeatSpike bool `yaml:"heat_spike"`
	FuelLeak  bool `yaml:"fuel_leak"`
	RPMSpike  bool `yaml:"rpm_spike"`
}

// LoadSettingsBundle reads and parses a YAML settings file.
func LoadSettingsBundle(path string) (*SettingsBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var bundle SettingsBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return &bundle, nil
}

// Validate checks that all names and parameter ranges in the bundle are valid.
func (b *SettingsBundle) Validate() error {
	if !ValidProfiles[strings.ToLower(b.Profile)] {
		return fmt.Errorf("unknown profile %q", b.Profile)
	}
	if b.MaxRows < 0 {
		return fmt.Errorf("max_rows must be non-negative, got %d", b.MaxRows)
	}
	if b.TickSeconds < 0 || math.IsNaN(b.TickSeconds) {
		return fmt.Errorf("tick_seconds must be non-negative, got %f", b.TickSeconds)
	}
	for name, v := range map[string]*float64{
		"temp_high": b.Thresholds.TempHigh,
		"fuel_low":  b.Thresholds.FuelLow,
		"rpm_high":  b.Thresholds.RPMHigh,
	} {
		if v != nil && math.IsNaN(*v) {
			return fmt.Errorf("%s must be numeric, got NaN", name)
		}
	}
	return nil
}

// Apply merges the bundle's threshold overrides over base, leaving fields
// the YAML did not set untouched.
func (t ThresholdsConfig) Apply(base AlertThresholds) AlertThresholds {
	if t.TempHigh != nil {
		base.TempHigh = *t.TempHigh
	}
	if t.FuelLow != nil {
		base.FuelLow = *t.FuelLow
	}
	if t.RPMHigh != nil {
		base.RPMHigh = *t.RPMHigh
	}
	return base
}

// Flags converts the YAML toggles to FaultInjectionFlags.
func (f FaultsConfig) Flags() FaultInjectionFlags {
	return FaultInjectionFlags{
		HeatSpike: f.HeatSpike,
		FuelLeak:  f.FuelLeak,
		RPMSpike:  f.RPMSpike,
	}
}
