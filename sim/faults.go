// Threshold evaluation over a telemetry snapshot, plus the fault-injection
// toggles that bias the walk to exercise alert paths deterministically.

package sim

import (
	"math"
	"sort"
)

// FaultInjectionFlags are independent toggles that bias the update rule.
// Any combination is valid.
type FaultInjectionFlags struct {
	HeatSpike bool // one-sided coolant increment past the normal ceiling
	FuelLeak  bool // extra consumption per tick
	RPMSpike  bool // widened rpm walk and raised rpm ceiling
}

// AlertThresholds is user-adjustable alerting configuration.
type AlertThresholds struct {
	TempHigh float64 // degrees C, coolant above this overheats
	FuelLow  float64 // percent, fuel below this is low
	RPMHigh  float64 // rpm above this is over the limit
}

// DefaultThresholds returns the stock alerting configuration.
func DefaultThresholds() AlertThresholds {
	return AlertThresholds{TempHigh: 110, FuelLow: 10, RPMHigh: 6000}
}

// Validate rejects thresholds that would make evaluation meaningless.
func (t AlertThresholds) Validate() error {
	if math.IsNaN(t.TempHigh) || math.IsNaN(t.FuelLow) || math.IsNaN(t.RPMHigh) {
		return &ConfigError{Field: "thresholds", Reason: "values must be numeric, got NaN"}
	}
	return nil
}

// AlertKind identifies one diagnostic alert condition.
type AlertKind string

const (
	AlertOverheat AlertKind = "overheat"
	AlertLowFuel  AlertKind = "low-fuel"
	AlertRPMLimit AlertKind = "rpm-limit"
)

// Severity ranks an alert for display.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Code returns the OBD-style diagnostic trouble code for the alert.
func (k AlertKind) Code() string {
	switch k {
	case AlertOverheat:
		return "P0217"
	case AlertLowFuel:
		return "P0462"
	case AlertRPMLimit:
		return "P0219"
	}
	return "UNKNOWN"
}

// Description returns the human-readable diagnostic text.
func (k AlertKind) Description() string {
	switch k {
	case AlertOverheat:
		return "Engine Overtemperature"
	case AlertLowFuel:
		return "Fuel Level Low"
	case AlertRPMLimit:
		return "Engine Overspeed Condition"
	}
	return "Unknown Condition"
}

// Severity returns the display severity of the alert.
func (k AlertKind) Severity() Severity {
	switch k {
	case AlertOverheat:
		return SeverityHigh
	case AlertRPMLimit:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// AlertSet is an unordered set of active alerts. Evaluation returns a set,
// not a sequence: simultaneous alerts carry no priority among themselves.
type AlertSet map[AlertKind]bool

// Has reports whether k is in the set.
func (s AlertSet) Has(k AlertKind) bool {
	return s[k]
}

// Kinds returns the set contents sorted by name, for stable logging.
func (s AlertSet) Kinds() []AlertKind {
	kinds := make([]AlertKind, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// EvaluateAlerts derives the active alert set from a snapshot. It is pure
// and stateless. Both bounds are strict: a value exactly at its threshold
// does not alert.
func EvaluateAlerts(state TelemetryState, th AlertThresholds) AlertSet {
	alerts := make(AlertSet)
	if state.CoolantTemp > th.TempHigh {
		alerts[AlertOverheat] = true
	}
	if state.FuelLevel < th.FuelLow {
		alerts[AlertLowFuel] = true
	}
	if float64(state.RPM) > th.RPMHigh {
		alerts[AlertRPMLimit] = true
	}
	return alerts
}

// NewSince returns the alerts present in cur but absent from prev: the
// rising edges. An alert that stays active across ticks is not reported
// again; one that clears and re-triggers is.
func NewSince(prev, cur AlertSet) AlertSet {
	fresh := make(AlertSet)
	for k := range cur {
		if !prev[k] {
			fresh[k] = true
		}
	}
	return fresh
}
