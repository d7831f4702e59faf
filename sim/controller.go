// sim/controller.go
package sim

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the controller's lifecycle state.
type Status string

const (
	StatusPaused  Status = "paused"
	StatusRunning Status = "running"
)

// TickResult is the outcome of one simulation tick exposed to the
// presentation layer.
type TickResult struct {
	State     TelemetryState
	Alerts    AlertSet // full active set after this tick
	NewAlerts AlertSet // rising edges: active now, absent last tick
	Sample    TelemetrySample
}

// Controller is the core object that owns the current telemetry state, the
// settings, the bounded log, and the previous-tick alert set, and advances
// them one tick at a time. It has exactly one logical owner and is not safe
// for concurrent use; the external driver invokes ticks serially.
type Controller struct {
	state      TelemetryState
	profile    DrivingProfile
	faults     FaultInjectionFlags
	thresholds AlertThresholds
	rng        RandomSource
	log        *TelemetryLog
	status     Status
	distanceKm float64
	// prevAlerts is compared against each tick's evaluation to find rising
	// edges. Updated only inside Tick and cleared on Reset.
	prevAlerts AlertSet
	metrics    *RunMetrics
	now        func() time.Time
}

// NewController creates a paused controller at the idle state with default
// settings. rng must not be nil; pass NewSeededSource for reproducible runs.
func NewController(rng RandomSource) *Controller {
	return &Controller{
		state:      NewIdleState(),
		profile:    ProfileNormal,
		thresholds: DefaultThresholds(),
		rng:        rng,
		log:        NewTelemetryLog(DefaultMaxRows),
		status:     StatusPaused,
		prevAlerts: make(AlertSet),
		metrics:    NewRunMetrics(),
		now:        time.Now,
	}
}

// Start transitions Paused → Running. Idempotent.
func (c *Controller) Start() {
	if c.status == StatusRunning {
		return
	}
	c.status = StatusRunning
	logrus.Info("monitoring started")
}

// Stop transitions Running → Paused. Idempotent.
func (c *Controller) Stop() {
	if c.status == StatusPaused {
		return
	}
	c.status = StatusPaused
	logrus.Info("monitoring stopped")
}

// Reset returns the controller to Paused with idle state, an empty log,
// zero distance, cleared pending alerts, and fresh metrics. Settings
// (profile, thresholds, faults, capacity) survive a reset.
func (c *Controller) Reset() {
	c.status = StatusPaused
	c.state = NewIdleState()
	c.log.Clear()
	c.distanceKm = 0
	c.prevAlerts = make(AlertSet)
	c.metrics = NewRunMetrics()
	logrus.Info("simulation data reset")
}

// Tick advances the simulation by dt seconds. It is a no-op returning false
// while Paused or for dt <= 0: no state change and no sample appended.
//
// Pipeline order is fixed: advance → distance accumulation → alert
// evaluation → rising-edge diff → log append → previous-set update.
func (c *Controller) Tick(dt float64) (TickResult, bool) {
	if c.status != StatusRunning || dt <= 0 {
		return TickResult{}, false
	}

	next := Advance(c.state, c.profile, c.faults, dt, c.rng)
	c.distanceKm += math.Max(next.Speed, 0) * dt / 3600

	alerts := EvaluateAlerts(next, c.thresholds)
	newAlerts := NewSince(c.prevAlerts, alerts)
	sample := c.log.Append(next, c.now())

	c.state = next
	c.prevAlerts = alerts
	c.metrics.observe(next, newAlerts, c.distanceKm)

	logrus.Debugf("[tick %06d] rpm=%d speed=%.1f temp=%.1f fuel=%.1f alerts=%v",
		c.metrics.TicksExecuted, next.RPM, next.Speed, next.CoolantTemp, next.FuelLevel, alerts.Kinds())

	return TickResult{State: next, Alerts: alerts, NewAlerts: newAlerts, Sample: sample}, true
}

// === Read accessors ===

// State returns the current telemetry snapshot.
func (c *Controller) State() TelemetryState {
	return c.state
}

// ActiveAlerts returns a copy of the alert set from the last tick.
func (c *Controller) ActiveAlerts() AlertSet {
	out := make(AlertSet, len(c.prevAlerts))
	for k := range c.prevAlerts {
		out[k] = true
	}
	return out
}

// Distance returns the cumulative simulated distance in km.
func (c *Controller) Distance() float64 {
	return c.distanceKm
}

// Status returns Running or Paused.
func (c *Controller) Status() Status {
	return c.status
}

// Running reports whether ticks currently advance the simulation.
func (c *Controller) Running() bool {
	return c.status == StatusRunning
}

// Profile returns the active driving profile.
func (c *Controller) Profile() DrivingProfile {
	return c.profile
}

// Metrics returns the run metrics accumulated since the last reset.
func (c *Controller) Metrics() *RunMetrics {
	return c.metrics
}

// Tail returns the most recent n log samples in chronological order.
func (c *Controller) Tail(n int) []TelemetrySample {
	return c.log.Tail(n)
}

// SmoothedTail returns the most recent n samples smoothed over window w.
func (c *Controller) SmoothedTail(n, w int) []TelemetrySample {
	return c.log.SmoothedTail(n, w)
}

// Aggregate returns statistics over the entire retained log.
func (c *Controller) Aggregate() LogAggregates {
	return c.log.Aggregate()
}

// LogLen returns the number of retained samples.
func (c *Controller) LogLen() int {
	return c.log.Len()
}

// Snapshot returns a read-only copy of the full retained log, taken
// atomically with respect to ticks, for rendering and export.
func (c *Controller) Snapshot() []TelemetrySample {
	return c.log.Tail(c.log.Len())
}

// === Settings mutators ===

// SetProfile switches the driving profile. Unrecognized names fall back to
// Normal rather than failing, and the resolved profile is returned.
func (c *Controller) SetProfile(name string) DrivingProfile {
	c.profile = ParseProfile(name)
	return c.profile
}

// SetThresholds replaces the alerting thresholds after validation.
func (c *Controller) SetThresholds(t AlertThresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.thresholds = t
	return nil
}

// SetFaults replaces the fault-injection toggles.
func (c *Controller) SetFaults(f FaultInjectionFlags) {
	c.faults = f
}

// SetMaxRows changes the log capacity.
func (c *Controller) SetMaxRows(n int) error {
	return c.log.SetMaxRows(n)
}
