// Tracks run-wide statistics for final reporting.

package sim

import (
	"fmt"
	"time"
)

// RunMetrics aggregates statistics about the run for final reporting.
// Useful for evaluating a parameter set and debugging behavior over time.
type RunMetrics struct {
	TicksExecuted   int               // number of non-paused ticks performed
	SamplesRecorded int               // samples appended to the log
	AlertCounts     map[AlertKind]int // rising-edge notifications per kind
	DistanceKm      float64           // cumulative simulated distance
	MinFuel         float64           // lowest fuel level observed
	PeakCoolantTemp float64           // highest coolant temperature observed
	PeakRPM         int               // highest rpm observed
}

// NewRunMetrics returns zeroed metrics for a fresh run.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		AlertCounts: make(map[AlertKind]int),
		MinFuel:     FuelMax,
	}
}

// observe folds one tick's outcome into the counters.
func (m *RunMetrics) observe(state TelemetryState, newAlerts AlertSet, distanceKm float64) {
	m.TicksExecuted++
	m.SamplesRecorded++
	m.DistanceKm = distanceKm
	for k := range newAlerts {
		m.AlertCounts[k]++
	}
	if state.FuelLevel < m.MinFuel {
		m.MinFuel = state.FuelLevel
	}
	if state.CoolantTemp > m.PeakCoolantTemp {
		m.PeakCoolantTemp = state.CoolantTemp
	}
	if state.RPM > m.PeakRPM {
		m.PeakRPM = state.RPM
	}
}

// Print displays the aggregated run summary.
func (m *RunMetrics) Print(agg LogAggregates, elapsed time.Duration) {
	fmt.Println("=== Telemetry Run Summary ===")
	fmt.Printf("Ticks executed       : %d\n", m.TicksExecuted)
	fmt.Printf("Samples recorded     : %d\n", m.SamplesRecorded)
	fmt.Printf("Distance             : %.3f km\n", m.DistanceKm)
	if m.TicksExecuted > 0 {
		fmt.Printf("Mean speed           : %.1f km/h\n", agg.MeanSpeed)
		fmt.Printf("Peak RPM             : %d\n", m.PeakRPM)
		fmt.Printf("Peak coolant temp    : %.1f C\n", m.PeakCoolantTemp)
		fmt.Printf("Fuel remaining (min) : %.1f %%\n", m.MinFuel)
	}
	for _, k := range (AlertSet{AlertOverheat: true, AlertLowFuel: true, AlertRPMLimit: true}).Kinds() {
		if n := m.AlertCounts[k]; n > 0 {
			fmt.Printf("Alerts [%s] %-26s: %d\n", k.Code(), k.Description(), n)
		}
	}
	fmt.Printf("Wall-clock elapsed   : %s\n", elapsed)
}
