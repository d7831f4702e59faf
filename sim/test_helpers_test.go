package sim

// stubSource is a deterministic RandomSource for tests: every draw lands at
// the same fraction of the [min, max) interval, so trajectories are exact.
type stubSource struct {
	side float64 // 0 = always min, 1 = always max, 0.5 = midpoint
}

func (s stubSource) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.side*(max-min)
}

// maxSource always draws the top of the interval: walks rise as fast as the
// profile allows.
var maxSource = stubSource{side: 1}

// minSource always draws the bottom of the interval: walks fall as fast as
// the profile allows.
var minSource = stubSource{side: 0}

// allFaultCombos enumerates the eight fault-injection combinations.
func allFaultCombos() []FaultInjectionFlags {
	combos := make([]FaultInjectionFlags, 0, 8)
	for _, heat := range []bool{false, true} {
		for _, leak := range []bool{false, true} {
			for _, spike := range []bool{false, true} {
				combos = append(combos, FaultInjectionFlags{HeatSpike: heat, FuelLeak: leak, RPMSpike: spike})
			}
		}
	}
	return combos
}
