package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benefits-sim/benefits-sim/sim"
)

// Scenario is the YAML run description: counties with their demographic
// characteristics, run parameters, and optional mechanism and sensitivity
// overrides. Loaded via LoadScenario(path).
type Scenario struct {
	Seed       int64        `yaml:"seed"`
	Months     int          `yaml:"months"`
	Seekers    int          `yaml:"seekers"`
	Policy     string       `yaml:"policy"`
	Allocation string       `yaml:"allocation"`
	Counties   []CountySpec `yaml:"counties"`

	Mechanisms  *MechanismSpec   `yaml:"mechanisms,omitempty"`
	Sensitivity *SensitivitySpec `yaml:"sensitivity,omitempty"`
}

// CountySpec carries one county's characteristics.
type CountySpec struct {
	Name         string  `yaml:"name"`
	Population   int     `yaml:"population"`
	MedianIncome float64 `yaml:"median_income"`
	PovertyRate  float64 `yaml:"poverty_rate"`
}

// MechanismSpec mirrors sim.MechanismConfig in YAML.
type MechanismSpec struct {
	BureaucracyPoints   bool `yaml:"bureaucracy_points"`
	FraudHistory        bool `yaml:"fraud_history"`
	Learning            bool `yaml:"learning"`
	StateDiscrimination bool `yaml:"state_discrimination"`
}

// SensitivitySpec mirrors sim.SensitivityConfig in YAML; zero-valued fields
// keep their baseline values. Vary names a single swept parameter.
type SensitivitySpec struct {
	ApprovalRate          float64 `yaml:"approval_rate,omitempty"`
	LearningRate          float64 `yaml:"learning_rate,omitempty"`
	Strictness            float64 `yaml:"strictness,omitempty"`
	ApplicationThreshold  float64 `yaml:"application_threshold,omitempty"`
	BureaucracyPointsMult float64 `yaml:"bureaucracy_points_mult,omitempty"`

	Vary *struct {
		Parameter string  `yaml:"parameter"`
		Value     float64 `yaml:"value"`
	} `yaml:"vary,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the scenario for values the engine would reject later.
func (sc *Scenario) Validate() error {
	if len(sc.Counties) == 0 {
		return fmt.Errorf("at least one county is required")
	}
	for _, c := range sc.Counties {
		if c.Name == "" {
			return fmt.Errorf("county name must not be empty")
		}
		if c.Population <= 0 {
			return fmt.Errorf("county %q population must be positive, got %d", c.Name, c.Population)
		}
	}
	if sc.Policy != "" && !sim.IsValidTriagePolicy(sc.Policy) {
		return fmt.Errorf("unknown triage policy %q; valid policies: %v", sc.Policy, sim.ValidTriagePolicies())
	}
	return nil
}

// Provider builds the county characteristics provider from the scenario.
func (sc *Scenario) Provider() (sim.StaticCounties, error) {
	infos := make([]sim.CountyInfo, len(sc.Counties))
	for i, c := range sc.Counties {
		infos[i] = sim.CountyInfo{
			Name:         c.Name,
			Population:   c.Population,
			MedianIncome: c.MedianIncome,
			PovertyRate:  c.PovertyRate,
		}
	}
	return sim.NewStaticCounties(infos...)
}

// CountyNames returns the scenario's counties in declaration order.
func (sc *Scenario) CountyNames() []string {
	names := make([]string, len(sc.Counties))
	for i, c := range sc.Counties {
		names[i] = c.Name
	}
	return names
}

// MechanismConfig resolves the scenario's mechanism toggles, defaulting to
// the full model when the section is absent.
func (sc *Scenario) MechanismConfig() sim.MechanismConfig {
	if sc.Mechanisms == nil {
		return sim.FullModel()
	}
	return sim.MechanismConfig{
		BureaucracyPointsEnabled:   sc.Mechanisms.BureaucracyPoints,
		FraudHistoryEnabled:        sc.Mechanisms.FraudHistory,
		LearningEnabled:            sc.Mechanisms.Learning,
		StateDiscriminationEnabled: sc.Mechanisms.StateDiscrimination,
	}
}

// SensitivityConfig resolves the scenario's calibration parameters on top of
// the baseline, then applies the single-parameter sweep if one is named.
func (sc *Scenario) SensitivityConfig() (sim.SensitivityConfig, error) {
	cfg := sim.BaselineSensitivity()
	if sc.Sensitivity == nil {
		return cfg, nil
	}
	sp := sc.Sensitivity
	if sp.ApprovalRate != 0 {
		cfg.ApprovalRate = sp.ApprovalRate
	}
	if sp.LearningRate != 0 {
		cfg.LearningRate = sp.LearningRate
	}
	if sp.Strictness != 0 {
		cfg.Strictness = sp.Strictness
	}
	if sp.ApplicationThreshold != 0 {
		cfg.ApplicationThreshold = sp.ApplicationThreshold
	}
	if sp.BureaucracyPointsMult != 0 {
		cfg.BureaucracyPointsMult = sp.BureaucracyPointsMult
	}
	if sp.Vary != nil {
		return cfg.Vary(sp.Vary.Parameter, sp.Vary.Value)
	}
	return cfg, nil
}
