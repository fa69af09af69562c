package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/benefits-sim/benefits-sim/sim"
	"github.com/benefits-sim/benefits-sim/sim/population"
)

var (
	// Run parameters
	seed       int64  // Master seed; all component generators derive from it
	months     int    // Number of monthly ticks
	seekers    int    // Population size
	policy     string // Triage policy name
	allocation string // Population allocation strategy across counties
	scenario   string // Optional YAML scenario path
	logLevel   string // Log verbosity level

	// Mechanism toggles
	bureaucracyPoints   bool
	fraudHistory        bool
	learning            bool
	stateDiscrimination bool

	// Sensitivity overrides
	approvalRate         float64
	learningRate         float64
	strictness           float64
	applicationThreshold float64
	pointsMult           float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "benefits-sim",
	Short: "Monthly discrete-time simulator for capacity-constrained benefits processing",
}

// defaultScenario is the built-in three-county demo used when no scenario
// file is given. Population spread is deliberately wide so the small county
// feels the capacity constraint first.
func defaultScenario() *Scenario {
	return &Scenario{
		Counties: []CountySpec{
			{Name: "Ashford County", Population: 1_200_000, MedianIncome: 62_000, PovertyRate: 13.5},
			{Name: "Briar County", Population: 250_000, MedianIncome: 51_000, PovertyRate: 16.8},
			{Name: "Carver County", Population: 58_761, MedianIncome: 44_000, PovertyRate: 21.3},
		},
	}
}

// runCmd executes the simulation using parameters from CLI flags and the
// optional scenario file. Scenario values win where both are present.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benefits-processing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc := defaultScenario()
		if scenario != "" {
			sc, err = LoadScenario(scenario)
			if err != nil {
				logrus.Fatalf("Unable to load scenario: %v", err)
			}
		}
		if sc.Seed == 0 {
			sc.Seed = seed
		}
		if sc.Months == 0 {
			sc.Months = months
		}
		if sc.Seekers == 0 {
			sc.Seekers = seekers
		}
		if sc.Policy == "" {
			sc.Policy = policy
		}
		if sc.Allocation == "" {
			sc.Allocation = allocation
		}

		mech := sim.MechanismConfig{
			BureaucracyPointsEnabled:   bureaucracyPoints,
			FraudHistoryEnabled:        fraudHistory,
			LearningEnabled:            learning,
			StateDiscriminationEnabled: stateDiscrimination,
		}
		if sc.Mechanisms != nil {
			mech = sc.MechanismConfig()
		}

		sens, err := sc.SensitivityConfig()
		if err != nil {
			logrus.Fatalf("Invalid sensitivity configuration: %v", err)
		}
		sens = applySensitivityFlags(sens, cmd.Flags())

		provider, err := sc.Provider()
		if err != nil {
			logrus.Fatalf("Invalid county data: %v", err)
		}

		strategy, err := population.ParseStrategy(sc.Allocation)
		if err != nil {
			logrus.Fatalf("Invalid allocation strategy: %v", err)
		}

		cfg := sim.RunConfig{
			Seekers:  sc.Seekers,
			Months:   sc.Months,
			Counties: sc.CountyNames(),
			Seed:     sc.Seed,
			Policy:   sc.Policy,
		}

		logrus.Infof("Generating population: %d seekers across %d counties (%s allocation)",
			cfg.Seekers, len(cfg.Counties), strategy)
		pop, err := population.Generate(cfg.Seekers, cfg.Counties, strategy, cfg.Seed, mech, sens, provider)
		if err != nil {
			logrus.Fatalf("Population generation failed: %v", err)
		}

		s, err := sim.NewSimulator(cfg, mech, sens, sim.DefaultReviewParams(), provider, pop)
		if err != nil {
			logrus.Fatalf("Simulator construction failed: %v", err)
		}

		startTime := time.Now()
		results := s.Run()
		logrus.Infof("Run %s completed in %v", results.RunID, time.Since(startTime))

		results.Summary.Print()
	},
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master random seed")
	runCmd.Flags().IntVar(&months, "months", 24, "Number of monthly ticks")
	runCmd.Flags().IntVar(&seekers, "seekers", 300, "Number of seekers to simulate")
	runCmd.Flags().StringVar(&policy, "policy", sim.PolicyFCFS, "Triage policy (simple_first, complex_first, random, need_based, fcfs)")
	runCmd.Flags().StringVar(&allocation, "allocation", string(population.Equal), "Population allocation across counties (equal, proportional)")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "YAML scenario file (overrides flags)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log verbosity (debug, info, warn, error)")

	runCmd.Flags().BoolVar(&bureaucracyPoints, "bureaucracy-points", true, "Enable the bounded navigation-capacity mechanism")
	runCmd.Flags().BoolVar(&fraudHistory, "fraud-history", true, "Enable fraud tracking and three-strike bans")
	runCmd.Flags().BoolVar(&learning, "learning", true, "Enable belief updates from outcomes")
	runCmd.Flags().BoolVar(&stateDiscrimination, "state-discrimination", true, "Enable the state-level suspicion bias mechanism")

	runCmd.Flags().Float64Var(&approvalRate, "approval-rate", 0.70, "Direct-decision approval probability")
	runCmd.Flags().Float64Var(&learningRate, "learning-rate", 0.30, "Belief update step size")
	runCmd.Flags().Float64Var(&strictness, "strictness", 0.50, "Suspicion threshold for verification")
	runCmd.Flags().Float64Var(&applicationThreshold, "application-threshold", 0.25, "Minimum belief required to apply")
	runCmd.Flags().Float64Var(&pointsMult, "points-mult", 1.0, "Navigation points multiplier")

	rootCmd.AddCommand(runCmd)
}

// applySensitivityFlags overlays sensitivity flags the user explicitly set on
// top of the scenario-resolved configuration. Flags left at their defaults
// never override a scenario value.
func applySensitivityFlags(cfg sim.SensitivityConfig, flags *pflag.FlagSet) sim.SensitivityConfig {
	set := func(name string, dst *float64) {
		if flags.Changed(name) {
			if v, err := flags.GetFloat64(name); err == nil {
				*dst = v
			}
		}
	}
	set("approval-rate", &cfg.ApprovalRate)
	set("learning-rate", &cfg.LearningRate)
	set("strictness", &cfg.Strictness)
	set("application-threshold", &cfg.ApplicationThreshold)
	set("points-mult", &cfg.BureaucracyPointsMult)
	return cfg
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
