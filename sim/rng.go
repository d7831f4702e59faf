package sim

import "math/rand"

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical settings MUST produce
// bit-for-bit identical telemetry trajectories.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === RandomSource ===

// RandomSource supplies the uniform draws that drive the telemetry walk.
// The single-method surface lets tests substitute a deterministic source
// and assert bounds instead of exact values.
type RandomSource interface {
	// Uniform returns a value in [min, max). If max <= min it returns min.
	Uniform(min, max float64) float64
}

// seededSource draws from a math/rand generator seeded by a SimulationKey.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine,
// which matches the single-owner tick discipline of the Controller.
type seededSource struct {
	key SimulationKey
	rng *rand.Rand
}

// NewSeededSource returns a RandomSource whose draw sequence is fully
// determined by key. Never returns nil.
func NewSeededSource(key SimulationKey) RandomSource {
	return &seededSource{
		key: key,
		rng: rand.New(rand.NewSource(int64(key))),
	}
}

func (s *seededSource) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}
