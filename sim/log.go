// Implements the TelemetryLog: the bounded, append-only history of recorded
// samples that feeds the history view, aggregates, and export.

package sim

import "time"

// DefaultMaxRows is the log capacity used when none is configured.
const DefaultMaxRows = 500

// TelemetrySample is a timestamped, immutable snapshot of the logged sensor
// subset. Samples are created only by TelemetryLog.Append and carry values
// already rounded to display precision.
type TelemetrySample struct {
	Time      time.Time
	RPM       int
	Speed     float64
	Temp      float64
	FuelLevel float64
}

// TelemetryLog is an ordered, chronological sequence of samples capped at
// maxRows, with FIFO eviction once capacity is exceeded. It is owned
// exclusively by the Controller; nothing else mutates it.
type TelemetryLog struct {
	samples []TelemetrySample
	maxRows int
}

// NewTelemetryLog creates an empty log. maxRows <= 0 selects DefaultMaxRows.
func NewTelemetryLog(maxRows int) *TelemetryLog {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &TelemetryLog{
		samples: make([]TelemetrySample, 0, maxRows),
		maxRows: maxRows,
	}
}

// Append records a snapshot of state at ts, evicting the oldest rows if the
// log would exceed capacity, and returns the recorded sample.
func (l *TelemetryLog) Append(state TelemetryState, ts time.Time) TelemetrySample {
	s := TelemetrySample{
		Time:      ts,
		RPM:       state.RPM,
		Speed:     round1(state.Speed),
		Temp:      round1(state.CoolantTemp),
		FuelLevel: round1(state.FuelLevel),
	}
	l.samples = append(l.samples, s)
	l.trim()
	return s
}

// trim drops the oldest rows until len == maxRows.
func (l *TelemetryLog) trim() {
	if over := len(l.samples) - l.maxRows; over > 0 {
		copy(l.samples, l.samples[over:])
		l.samples = l.samples[:l.maxRows]
	}
}

// Len returns the number of retained samples.
func (l *TelemetryLog) Len() int {
	return len(l.samples)
}

// MaxRows returns the current capacity.
func (l *TelemetryLog) MaxRows() int {
	return l.maxRows
}

// SetMaxRows changes the capacity. Lowering it below the current size evicts
// the oldest rows immediately. n <= 0 is rejected.
func (l *TelemetryLog) SetMaxRows(n int) error {
	if n <= 0 {
		return &ConfigError{Field: "max_rows", Reason: "must be positive"}
	}
	l.maxRows = n
	l.trim()
	return nil
}

// Clear empties the log.
func (l *TelemetryLog) Clear() {
	l.samples = l.samples[:0]
}

// Tail returns the most recent min(n, Len) samples in chronological order.
// n <= 0 returns an empty slice. The result is a copy.
func (l *TelemetryLog) Tail(n int) []TelemetrySample {
	if n <= 0 {
		return []TelemetrySample{}
	}
	if n > len(l.samples) {
		n = len(l.samples)
	}
	out := make([]TelemetrySample, n)
	copy(out, l.samples[len(l.samples)-n:])
	return out
}

// LogAggregates are derived statistics over the entire retained log.
type LogAggregates struct {
	MeanSpeed float64
	MaxRPM    int
}

// Aggregate computes statistics over every retained sample, not just a
// visible window. An empty log yields zero values rather than an error.
func (l *TelemetryLog) Aggregate() LogAggregates {
	if len(l.samples) == 0 {
		return LogAggregates{}
	}
	var agg LogAggregates
	sum := 0.0
	for _, s := range l.samples {
		sum += s.Speed
		if s.RPM > agg.MaxRPM {
			agg.MaxRPM = s.RPM
		}
	}
	agg.MeanSpeed = sum / float64(len(l.samples))
	return agg
}

// SmoothedTail returns the most recent n samples with a trailing rolling
// mean of width w applied to each numeric column:
//
//	smoothed[i] = mean(values[max(0, i-w+1) .. i])
//
// It is a pure display transform; the log itself is unchanged. w <= 1
// returns the tail as-is.
func (l *TelemetryLog) SmoothedTail(n, w int) []TelemetrySample {
	tail := l.Tail(n)
	if w <= 1 || len(tail) == 0 {
		return tail
	}
	out := make([]TelemetrySample, len(tail))
	for i := range tail {
		lo := i - w + 1
		if lo < 0 {
			lo = 0
		}
		var rpm, speed, temp, fuel float64
		count := float64(i - lo + 1)
		for j := lo; j <= i; j++ {
			rpm += float64(tail[j].RPM)
			speed += tail[j].Speed
			temp += tail[j].Temp
			fuel += tail[j].FuelLevel
		}
		out[i] = TelemetrySample{
			Time:      tail[i].Time,
			RPM:       int(rpm/count + 0.5),
			Speed:     round1(speed / count),
			Temp:      round1(temp / count),
			FuelLevel: round1(fuel / count),
		}
	}
	return out
}
