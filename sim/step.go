// Implements the step simulator: the pure function that advances one
// TelemetryState by dt seconds using a bounded random walk per sensor.

package sim

import "math"

// rpmSpikeFactor widens the rpm walk when the rpm-spike fault is injected.
const rpmSpikeFactor = 1.4

// fuelLeakRate is the extra consumption coefficient added under the
// fuel-leak fault.
const fuelLeakRate = 0.001

// Advance produces the state after dt seconds. It is pure: the inputs are
// never mutated and the only nondeterminism flows through rng.
//
// Each primary sensor takes one bounded uniform step
// clamp(cur + U(-v, +v), min, max) with v scaled by the profile; the derived
// sensors (load, fuel rate, MAF) are recomputed from the new primaries.
// Fuel consumption is deterministic given the new speed. dt <= 0 is treated
// as dt = 0: the walk still steps but the fuel drop is zero, so fuel can
// never increase through a bad elapsed-time value.
func Advance(state TelemetryState, profile DrivingProfile, faults FaultInjectionFlags, dt float64, rng RandomSource) TelemetryState {
	c := profile.Coeffs()
	next := state
	if dt < 0 {
		dt = 0
	}

	rpmVar := c.RPMVariation
	rpmMax := float64(RPMCeiling)
	if faults.RPMSpike {
		rpmVar *= rpmSpikeFactor
		rpmMax = RPMSpikeCeiling
	}
	next.RPM = int(math.Round(clamp(float64(state.RPM)+rng.Uniform(-rpmVar, rpmVar), RPMFloor, rpmMax)))

	next.Speed = round1(clamp(state.Speed+rng.Uniform(-c.SpeedVariation, c.SpeedVariation), 0, SpeedMax))
	next.Throttle = round1(clamp(state.Throttle+rng.Uniform(-c.ThrottleVariation, c.ThrottleVariation), 0, ThrottleMax))

	next.CoolantTemp = clamp(state.CoolantTemp+rng.Uniform(-c.TempVariation, c.TempVariation), CoolantMin, CoolantMax)
	if faults.HeatSpike {
		// One-sided increment past the normal ceiling, up to the spike limit.
		next.CoolantTemp = clamp(next.CoolantTemp+rng.Uniform(0.2, 0.8), CoolantMin, CoolantSpikeMax)
	}
	next.CoolantTemp = round1(next.CoolantTemp)
	next.OilTemp = round1(clamp(state.OilTemp+rng.Uniform(-c.TempVariation*0.7, c.TempVariation*0.7), OilMin, OilMax))

	// Fuel never increases: the drop is a per-second rate scaled by dt and
	// converted to percent-of-tank. FuelLevel keeps full precision so tiny
	// drops under small dt are not lost to rounding.
	leak := 0.0
	if faults.FuelLeak {
		leak = fuelLeakRate
	}
	drop := (c.BaseFuelRate + c.SpeedFuelFactor*math.Max(next.Speed, 0) + leak) * dt * 100
	next.FuelLevel = math.Max(0, state.FuelLevel-drop)

	// Derived sensor proxies, recomputed from the new primaries.
	next.Load = round1(clamp(next.Throttle*0.6+next.Speed/2, 0, LoadMax))
	next.FuelRate = round3((0.3 + float64(next.RPM)/6000.0*2.0) * (1 + next.Load/100) * c.FuelRateFactor)
	next.MAF = round2(1.0 + float64(next.RPM)/1000.0*(next.Throttle/100.0)*2.0)

	return next
}
