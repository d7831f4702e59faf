package cmd

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/vehicle-sim/vehicle-sim/sim"
)

var (
	// CLI flags for the simulation run
	seed        int64   // Seed for the telemetry random walk
	ticks       int     // Number of simulation ticks to execute
	dt          float64 // Simulated seconds per tick
	pace        string  // Wall-clock cadence preset (fast, normal, slow, none)
	logLevel    string  // Log verbosity level
	profileName string  // Driving profile (eco, normal, sport)
	maxRows     int     // Telemetry log capacity

	// Alert thresholds
	tempHigh float64 // Overheat threshold (degrees C)
	fuelLow  float64 // Low-fuel threshold (percent)
	rpmHigh  float64 // Overspeed threshold (rpm)

	// Fault injection toggles
	heatSpike bool // Bias coolant temperature upward
	fuelLeak  bool // Add extra fuel consumption
	rpmSpike  bool // Widen the rpm walk

	// Settings bundle and export targets
	configPath string // Optional YAML settings bundle
	csvPath    string // CSV export destination
	jsonPath   string // JSON export destination
)

// paceIntervals maps cadence presets to the wall-clock delay between ticks.
// The values mirror the dashboard's Fast/Normal/Slow selector; "none" runs
// the ticks back to back.
var paceIntervals = map[string]time.Duration{
	"fast":   300 * time.Millisecond,
	"normal": time.Second,
	"slow":   2 * time.Second,
	"none":   0,
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vehicle-sim",
	Short: "Stochastic vehicle telemetry simulator with alerting and export",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the telemetry simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		interval, ok := paceIntervals[pace]
		if !ok {
			logrus.Fatalf("Invalid pace %q (want fast, normal, slow, or none)", pace)
		}

		thresholds := sim.AlertThresholds{TempHigh: tempHigh, FuelLow: fuelLow, RPMHigh: rpmHigh}
		faults := sim.FaultInjectionFlags{HeatSpike: heatSpike, FuelLeak: fuelLeak, RPMSpike: rpmSpike}
		rows := maxRows
		tickSeconds := dt

		// A settings bundle fills in anything not set explicitly on the
		// command line; explicit flags win.
		if configPath != "" {
			bundle, err := sim.LoadSettingsBundle(configPath)
			if err != nil {
				logrus.Fatalf("Could not load settings bundle: %v", err)
			}
			if err := bundle.Validate(); err != nil {
				logrus.Fatalf("Invalid settings bundle: %v", err)
			}
			applySettingsBundle(bundle, cmd.Flags().Changed,
				&profileName, &thresholds, &faults, &rows, &tickSeconds)
		}

		if tickSeconds <= 0 {
			logrus.Fatalf("dt must be positive, got %f", tickSeconds)
		}

		controller := sim.NewController(sim.NewSeededSource(sim.NewSimulationKey(seed)))
		profile := controller.SetProfile(profileName)
		if err := controller.SetThresholds(thresholds); err != nil {
			logrus.Fatalf("Invalid thresholds: %v", err)
		}
		controller.SetFaults(faults)
		if err := controller.SetMaxRows(rows); err != nil {
			logrus.Fatalf("Invalid log capacity: %v", err)
		}

		logrus.Infof("Starting run: profile=%s ticks=%d dt=%.2fs seed=%d faults=%+v",
			profile, ticks, tickSeconds, seed, faults)

		startTime := time.Now()
		controller.Start()
		for i := 0; i < ticks; i++ {
			result, stepped := controller.Tick(tickSeconds)
			if !stepped {
				break
			}
			for _, kind := range result.NewAlerts.Kinds() {
				logrus.Warnf("ALERT [%s] %s (severity: %s)", kind.Code(), kind.Description(), kind.Severity())
			}
			if interval > 0 {
				time.Sleep(interval)
			}
		}
		controller.Stop()

		controller.Metrics().Print(controller.Aggregate(), time.Since(startTime))

		samples := controller.Snapshot()
		if csvPath != "" {
			exportTo(csvPath, samples, sim.WriteCSV)
		}
		if jsonPath != "" {
			exportTo(jsonPath, samples, sim.WriteJSON)
		}

		logrus.Info("Run complete.")
	},
}

// applySettingsBundle merges bundle values over the current settings, one
// field at a time: a bundle field applies only when the user did not set the
// corresponding flag explicitly, so an unrelated flag never discards the
// rest of its group. changed reports whether a flag was set on the command
// line (cobra's Flags().Changed).
func applySettingsBundle(bundle *sim.SettingsBundle, changed func(name string) bool,
	profileName *string, thresholds *sim.AlertThresholds, faults *sim.FaultInjectionFlags,
	rows *int, tickSeconds *float64) {
	if bundle.Profile != "" && !changed("profile") {
		*profileName = bundle.Profile
	}
	if bundle.Thresholds.TempHigh != nil && !changed("temp-high") {
		thresholds.TempHigh = *bundle.Thresholds.TempHigh
	}
	if bundle.Thresholds.FuelLow != nil && !changed("fuel-low") {
		thresholds.FuelLow = *bundle.Thresholds.FuelLow
	}
	if bundle.Thresholds.RPMHigh != nil && !changed("rpm-high") {
		thresholds.RPMHigh = *bundle.Thresholds.RPMHigh
	}
	if !changed("heat-spike") {
		faults.HeatSpike = bundle.Faults.HeatSpike
	}
	if !changed("fuel-leak") {
		faults.FuelLeak = bundle.Faults.FuelLeak
	}
	if !changed("rpm-spike") {
		faults.RPMSpike = bundle.Faults.RPMSpike
	}
	if bundle.MaxRows > 0 && !changed("max-rows") {
		*rows = bundle.MaxRows
	}
	if bundle.TickSeconds > 0 && !changed("dt") {
		*tickSeconds = bundle.TickSeconds
	}
}

// exportTo writes the retained log to path with the given serializer.
// Export failures abort the CLI but never touch controller state.
func exportTo(path string, samples []sim.TelemetrySample, write func(w io.Writer, s []sim.TelemetrySample) error) {
	file, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Error creating export file %s: %v", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Fatalf("Error closing export file %s: %v", path, closeErr)
		}
	}()
	if err := write(file, samples); err != nil {
		logrus.Fatalf("Error writing export file %s: %v", path, err)
	}
	logrus.Debugf("Exported %d samples to '%s'", len(samples), path)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the telemetry random walk")
	runCmd.Flags().IntVar(&ticks, "ticks", 60, "Number of simulation ticks to execute")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0, "Simulated seconds per tick")
	runCmd.Flags().StringVar(&pace, "pace", "none", "Wall-clock cadence between ticks (fast, normal, slow, none)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Simulation settings
	runCmd.Flags().StringVar(&profileName, "profile", "normal", "Driving profile (eco, normal, sport)")
	runCmd.Flags().IntVar(&maxRows, "max-rows", sim.DefaultMaxRows, "Telemetry log capacity (oldest rows evicted first)")

	// Alert thresholds
	runCmd.Flags().Float64Var(&tempHigh, "temp-high", 110, "Overheat alert threshold in degrees C")
	runCmd.Flags().Float64Var(&fuelLow, "fuel-low", 10, "Low-fuel alert threshold in percent")
	runCmd.Flags().Float64Var(&rpmHigh, "rpm-high", 6000, "Overspeed alert threshold in rpm")

	// Fault injection
	runCmd.Flags().BoolVar(&heatSpike, "heat-spike", false, "Inject a coolant heat spike")
	runCmd.Flags().BoolVar(&fuelLeak, "fuel-leak", false, "Inject a fuel leak")
	runCmd.Flags().BoolVar(&rpmSpike, "rpm-spike", false, "Inject rpm spikes")

	// Settings bundle and export
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML settings bundle (flags take precedence)")
	runCmd.Flags().StringVar(&csvPath, "export-csv", "", "Write the retained log to a CSV file")
	runCmd.Flags().StringVar(&jsonPath, "export-json", "", "Write the retained log to a JSON file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
