package sim

import (
	"errors"
	"testing"
	"time"
)

// appendN appends n samples whose RPM encodes insertion order (base+i).
func appendN(l *TelemetryLog, n, base int) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		state := TelemetryState{RPM: base + i, Speed: float64(10 * (i + 1)), CoolantTemp: 80, FuelLevel: 90}
		l.Append(state, ts.Add(time.Duration(i)*time.Second))
	}
}

func TestTelemetryLog_FIFOEviction(t *testing.T) {
	l := NewTelemetryLog(10)
	appendN(l, 20, 1000)

	if l.Len() != 10 {
		t.Fatalf("Len = %d, want capped at 10", l.Len())
	}
	// Retained rows are exactly the most recent 10, in original order.
	got := l.Tail(10)
	for i, s := range got {
		want := 1010 + i
		if s.RPM != want {
			t.Errorf("row %d: rpm = %d, want %d", i, s.RPM, want)
		}
	}
}

func TestTelemetryLog_NeverExceedsCapacity(t *testing.T) {
	l := NewTelemetryLog(5)
	for i := 0; i < 50; i++ {
		appendN(l, 1, i)
		if l.Len() > 5 {
			t.Fatalf("log grew to %d rows, capacity 5", l.Len())
		}
	}
}

func TestTelemetryLog_Tail(t *testing.T) {
	l := NewTelemetryLog(100)
	appendN(l, 10, 2000)

	last3 := l.Tail(3)
	if len(last3) != 3 {
		t.Fatalf("Tail(3) returned %d rows", len(last3))
	}
	for i, s := range last3 {
		if want := 2007 + i; s.RPM != want {
			t.Errorf("Tail(3)[%d].RPM = %d, want %d", i, s.RPM, want)
		}
	}

	if got := l.Tail(0); len(got) != 0 {
		t.Errorf("Tail(0) returned %d rows, want 0", len(got))
	}
	if got := l.Tail(-5); len(got) != 0 {
		t.Errorf("Tail(-5) returned %d rows, want 0", len(got))
	}
	if got := l.Tail(100); len(got) != 10 {
		t.Errorf("Tail(100) returned %d rows, want all 10", len(got))
	}
}

func TestTelemetryLog_TailOnEmptyLog(t *testing.T) {
	l := NewTelemetryLog(10)
	if got := l.Tail(5); len(got) != 0 {
		t.Errorf("Tail on empty log returned %d rows", len(got))
	}
}

func TestTelemetryLog_Aggregate(t *testing.T) {
	l := NewTelemetryLog(10)

	if agg := l.Aggregate(); agg.MeanSpeed != 0 || agg.MaxRPM != 0 {
		t.Errorf("empty log aggregate = %+v, want zero values", agg)
	}

	ts := time.Now()
	l.Append(TelemetryState{RPM: 1000, Speed: 10}, ts)
	l.Append(TelemetryState{RPM: 3000, Speed: 20}, ts)
	l.Append(TelemetryState{RPM: 2000, Speed: 30}, ts)

	agg := l.Aggregate()
	if agg.MeanSpeed != 20 {
		t.Errorf("MeanSpeed = %v, want 20", agg.MeanSpeed)
	}
	if agg.MaxRPM != 3000 {
		t.Errorf("MaxRPM = %d, want 3000", agg.MaxRPM)
	}
}

func TestTelemetryLog_AggregateCoversWholeLogNotTail(t *testing.T) {
	l := NewTelemetryLog(100)
	l.Append(TelemetryState{RPM: 6000, Speed: 200}, time.Now())
	for i := 0; i < 5; i++ {
		l.Append(TelemetryState{RPM: 1000, Speed: 0}, time.Now())
	}
	if agg := l.Aggregate(); agg.MaxRPM != 6000 {
		t.Errorf("MaxRPM = %d, want 6000 from the oldest retained row", agg.MaxRPM)
	}
}

func TestTelemetryLog_SetMaxRows(t *testing.T) {
	l := NewTelemetryLog(10)
	appendN(l, 10, 3000)

	// Lowering the cap evicts the oldest rows immediately.
	if err := l.SetMaxRows(3); err != nil {
		t.Fatalf("SetMaxRows(3): %v", err)
	}
	got := l.Tail(10)
	if len(got) != 3 {
		t.Fatalf("after shrink, Len = %d, want 3", len(got))
	}
	for i, s := range got {
		if want := 3007 + i; s.RPM != want {
			t.Errorf("row %d: rpm = %d, want %d", i, s.RPM, want)
		}
	}

	var cfgErr *ConfigError
	if err := l.SetMaxRows(0); !errors.As(err, &cfgErr) {
		t.Errorf("SetMaxRows(0) = %v, want *ConfigError", err)
	}
	if err := l.SetMaxRows(-1); err == nil {
		t.Error("SetMaxRows(-1) accepted")
	}
}

func TestTelemetryLog_Clear(t *testing.T) {
	l := NewTelemetryLog(10)
	appendN(l, 5, 4000)
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len after Clear = %d", l.Len())
	}
	if agg := l.Aggregate(); agg.MeanSpeed != 0 {
		t.Errorf("aggregate after Clear = %+v", agg)
	}
}

func TestTelemetryLog_SmoothedTail(t *testing.T) {
	l := NewTelemetryLog(10)
	ts := time.Now()
	for i, speed := range []float64{10, 20, 30, 40} {
		l.Append(TelemetryState{RPM: 1000, Speed: speed, CoolantTemp: 80, FuelLevel: 90}, ts.Add(time.Duration(i)*time.Second))
	}

	smoothed := l.SmoothedTail(4, 2)
	wantSpeeds := []float64{10, 15, 25, 35} // trailing mean of width 2
	for i, s := range smoothed {
		if s.Speed != wantSpeeds[i] {
			t.Errorf("smoothed[%d].Speed = %v, want %v", i, s.Speed, wantSpeeds[i])
		}
	}

	// Width 1 (or less) is the identity transform.
	plain := l.SmoothedTail(4, 1)
	for i, s := range plain {
		if want := []float64{10, 20, 30, 40}[i]; s.Speed != want {
			t.Errorf("w=1 smoothed[%d].Speed = %v, want %v", i, s.Speed, want)
		}
	}

	// The log itself is unchanged.
	if got := l.Tail(4)[1].Speed; got != 20 {
		t.Errorf("smoothing mutated the log: %v", got)
	}
}

func TestTelemetryLog_AppendRoundsSample(t *testing.T) {
	l := NewTelemetryLog(10)
	s := l.Append(TelemetryState{RPM: 1500, Speed: 55.56, CoolantTemp: 90.04, FuelLevel: 74.96}, time.Now())
	if s.Speed != 55.6 || s.Temp != 90.0 || s.FuelLevel != 75.0 {
		t.Errorf("sample not rounded to one decimal: %+v", s)
	}
}
