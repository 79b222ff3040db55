package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
)

var (
	// CLI flags shared by run and serve
	seed        int64  // Seed for all stochastic decisions
	logLevel    string // Log verbosity level
	configPath  string // Optional YAML config file
	catalogPath string // Optional YAML catalog override

	// Initialization overrides (zero value = keep config/default)
	warehouseRows    int
	warehouseCols    int
	initialMoney     float64
	initialEmployees int
	speedMultiplier  int

	// run-only flags
	ticks int64 // Number of ticks to simulate headlessly
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "warehouse-sim",
	Short: "Discrete-time simulator for a medical-supply distribution warehouse",
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildConfig merges the YAML config (if any) with CLI overrides.
func buildConfig() sim.Config {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to read config: %v", err)
		}
		cfg = loaded
	}
	if warehouseRows > 0 {
		cfg.WarehouseRows = warehouseRows
	}
	if warehouseCols > 0 {
		cfg.WarehouseCols = warehouseCols
	}
	if initialMoney > 0 {
		cfg.InitialMoney = initialMoney
	}
	if initialEmployees > 0 {
		cfg.InitialEmployees = initialEmployees
	}
	if speedMultiplier > 0 {
		cfg.SpeedMultiplier = speedMultiplier
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// buildCatalog loads the catalog override or falls back to the built-in
// medical/dental data set.
func buildCatalog() *sim.Catalog {
	if catalogPath == "" {
		return sim.DefaultCatalog()
	}
	catalog, err := sim.LoadCatalog(catalogPath)
	if err != nil {
		logrus.Fatalf("unable to read catalog: %v", err)
	}
	return catalog
}

// runCmd executes a headless batch simulation for a fixed tick count.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the warehouse simulation headlessly for a fixed number of ticks",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := buildConfig()
		catalog := buildCatalog()

		logrus.Infof("Starting simulation: %dx%d grid, %d employees, seed=%d, ticks=%d",
			cfg.WarehouseRows, cfg.WarehouseCols, cfg.InitialEmployees, seed, ticks)

		startTime := time.Now()

		s := sim.NewSimulator(catalog, seed)
		state, err := s.NewInitialState(cfg)
		if err != nil {
			logrus.Fatalf("unable to initialize simulation: %v", err)
		}

		for i := int64(0); i < ticks; i++ {
			state, err = s.Tick(state)
			if err != nil {
				logrus.Fatalf("tick %d: %v", i, err)
			}
		}

		logrus.Infof("Simulation complete: day=%d t=%dms orders=%d trucks=%d active-tasks=%d (wall %s)",
			state.Day, state.CurrentTime, len(state.Orders), len(state.Trucks), len(state.Tasks),
			time.Since(startTime).Round(time.Millisecond))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for all stochastic decisions")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to YAML catalog override")

	rootCmd.PersistentFlags().IntVar(&warehouseRows, "rows", 0, "Warehouse grid rows (overrides config)")
	rootCmd.PersistentFlags().IntVar(&warehouseCols, "cols", 0, "Warehouse grid columns (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&initialMoney, "money", 0, "Starting money (overrides config)")
	rootCmd.PersistentFlags().IntVar(&initialEmployees, "employees", 0, "Starting employee count (overrides config)")
	rootCmd.PersistentFlags().IntVar(&speedMultiplier, "speed", 0, "Initial speed multiplier 1-3 (overrides config)")

	runCmd.Flags().Int64Var(&ticks, "ticks", 36000, "Number of ticks to simulate (36000 = one sim day at 1x)")

	rootCmd.AddCommand(runCmd)
}
