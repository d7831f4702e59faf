// Package sim provides the core engine for the vehicle telemetry simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - state.go: TelemetryState value type, domain bounds, and idle defaults
//   - step.go: the bounded random walk that advances state one tick at a time
//   - controller.go: the tick pipeline (advance → distance → alerts → log)
//
// # Architecture
//
// The engine is single-owner and synchronous: a Controller holds the current
// TelemetryState, the bounded TelemetryLog, and the previous-tick alert set,
// and mutates them only inside Tick. The caller (cmd/) owns the cadence:
// it invokes Tick(dt) in a loop, optionally sleeping between ticks. There is
// no background work and no locking; render/export paths read snapshots.
//
// Randomness flows through the RandomSource interface so that a fixed
// SimulationKey reproduces a run exactly (rng.go). Tests substitute
// deterministic sources to assert bounds rather than exact trajectories.
package sim
