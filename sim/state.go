package sim

import "math"

// Sensor domain bounds. Walk bounds follow the dashboard gauge ranges; the
// spike ceilings are the extended limits reachable only under fault injection.
const (
	RPMIdle         = 900
	RPMFloor        = 800
	RPMCeiling      = 6500
	RPMSpikeCeiling = 7000

	SpeedMax    = 220.0 // km/h
	ThrottleMax = 100.0 // percent

	CoolantMin      = 70.0 // degrees C
	CoolantMax      = 120.0
	CoolantSpikeMax = 150.0
	OilMin          = 60.0
	OilMax          = 130.0

	FuelMax = 100.0 // percent of tank
	LoadMax = 100.0 // percent
)

// TelemetryState is one vehicle's instantaneous sensor readings. It is a
// value type: every tick produces a new instance and the previous one is
// never mutated. All bounded fields are clamped to their domain after every
// update; no field is ever NaN.
type TelemetryState struct {
	RPM         int     // engine speed
	Speed       float64 // km/h
	Throttle    float64 // percent
	CoolantTemp float64 // degrees C
	OilTemp     float64 // degrees C
	FuelLevel   float64 // percent, non-increasing (no refuel is modeled)
	Load        float64 // engine load, percent
	FuelRate    float64 // L/h proxy, derived
	MAF         float64 // g/s proxy, derived
}

// NewIdleState returns the fixed idle defaults used at construction and reset.
func NewIdleState() TelemetryState {
	return TelemetryState{
		RPM:         RPMIdle,
		Speed:       0,
		Throttle:    0,
		CoolantTemp: 75.0,
		OilTemp:     70.0,
		FuelLevel:   FuelMax,
		Load:        10.0,
		FuelRate:    0.5,
		MAF:         2.0,
	}
}

// clamp bounds v to [lo, hi]. NaN collapses to lo so a bad intermediate can
// never escape into state.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal place (display precision for most sensors).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places (MAF sensor precision).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 rounds to three decimal places (fuel-rate sensor precision).
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
