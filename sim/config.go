package sim

import "fmt"

// MechanismConfig selects which theoretical mechanisms are active for a run.
// Chosen once at construction and immutable for the run's duration; every
// consumer gates on these flags rather than probing for per-agent state.
type MechanismConfig struct {
	BureaucracyPointsEnabled   bool // seekers have bounded navigation capacity
	FraudHistoryEnabled        bool // fraud tracking plus three-strike bans
	LearningEnabled            bool // seekers update beliefs from outcomes
	StateDiscriminationEnabled bool // suspicion bias from state-level patterns
}

// FullModel returns the configuration with all four mechanisms active.
func FullModel() MechanismConfig {
	return MechanismConfig{
		BureaucracyPointsEnabled:   true,
		FraudHistoryEnabled:        true,
		LearningEnabled:            true,
		StateDiscriminationEnabled: true,
	}
}

// BaselineMechanisms returns the configuration with every mechanism
// disabled, isolating the pure triage-and-capacity effect.
func BaselineMechanisms() MechanismConfig {
	return MechanismConfig{}
}

// ActiveMechanisms lists the enabled mechanism names, for logging.
func (m MechanismConfig) ActiveMechanisms() []string {
	var active []string
	if m.BureaucracyPointsEnabled {
		active = append(active, "bureaucracy_points")
	}
	if m.FraudHistoryEnabled {
		active = append(active, "fraud_history")
	}
	if m.LearningEnabled {
		active = append(active, "learning")
	}
	if m.StateDiscriminationEnabled {
		active = append(active, "state_discrimination")
	}
	return active
}

// SensitivityConfig records the five calibration parameters plus which
// single parameter, if any, is varied from baseline for a sensitivity sweep.
// Immutable once built: Vary returns a modified copy.
type SensitivityConfig struct {
	ApprovalRate          float64 // direct-decision approval probability
	LearningRate          float64 // belief step size toward observed outcome
	Strictness            float64 // suspicion threshold that triggers verification
	ApplicationThreshold  float64 // minimum belief required to bother applying
	BureaucracyPointsMult float64 // scales generated navigation points

	// VariedParameter names the swept parameter; empty for baseline runs.
	VariedParameter string
	VariedValue     float64
}

// BaselineSensitivity returns the calibrated default parameter values.
func BaselineSensitivity() SensitivityConfig {
	return SensitivityConfig{
		ApprovalRate:          0.70,
		LearningRate:          0.30,
		Strictness:            0.50,
		ApplicationThreshold:  0.25,
		BureaucracyPointsMult: 1.0,
	}
}

// Vary returns a copy with one named parameter set to value, the rest at
// baseline. Unknown parameter names fail fast.
func (c SensitivityConfig) Vary(name string, value float64) (SensitivityConfig, error) {
	out := c
	switch name {
	case "approval_rate":
		out.ApprovalRate = value
	case "learning_rate":
		out.LearningRate = value
	case "strictness":
		out.Strictness = value
	case "application_threshold":
		out.ApplicationThreshold = value
	case "bureaucracy_points_mult":
		out.BureaucracyPointsMult = value
	default:
		return out, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	out.VariedParameter = name
	out.VariedValue = value
	return out, nil
}

// Validate checks that every probability-like parameter is in range.
func (c SensitivityConfig) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"approval_rate", c.ApprovalRate},
		{"learning_rate", c.LearningRate},
		{"strictness", c.Strictness},
		{"application_threshold", c.ApplicationThreshold},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("sensitivity parameter %s=%v outside [0,1]", p.name, p.value)
		}
	}
	if c.BureaucracyPointsMult < 0 {
		return fmt.Errorf("bureaucracy_points_mult must be non-negative, got %v", c.BureaucracyPointsMult)
	}
	return nil
}

// ReviewParams holds the calibration constants of the two processing stages.
// They exist as explicit configuration rather than magic numbers; the
// defaults are the calibrated values.
type ReviewParams struct {
	// EscalationComplexity: applications above this complexity go to review.
	EscalationComplexity float64
	// EscalationSuspicion: applications above this suspicion go to review.
	EscalationSuspicion float64
	// ReviewerAccuracy is the probabilistic fraud-detection rate used when
	// the bureaucracy-points mechanism is off.
	ReviewerAccuracy float64
	// FraudCostMultiplier scales investigation costs for fraudulent
	// applications; maintaining lies under scrutiny is harder.
	FraudCostMultiplier float64
	// DiscrepancyWeight and PropensityWeight shape the evaluator's
	// fraud-check draw from the declared-vs-true gap and the seeker's
	// underlying propensity.
	DiscrepancyWeight float64
	PropensityWeight  float64
	// RaceSuspicionBias is the state-level statistical-discrimination
	// adjustment added to suspicion per applicant race, applied only when
	// the mechanism is enabled. Empty by default.
	RaceSuspicionBias map[string]float64
}

// DefaultReviewParams returns the calibrated processing constants.
func DefaultReviewParams() ReviewParams {
	return ReviewParams{
		EscalationComplexity: 0.80,
		EscalationSuspicion:  0.80,
		ReviewerAccuracy:     0.85,
		FraudCostMultiplier:  2.0,
		DiscrepancyWeight:    1.0,
		PropensityWeight:     0.10,
	}
}

// Validate checks the processing constants.
func (p ReviewParams) Validate() error {
	if p.EscalationComplexity < 0 || p.EscalationComplexity > 1 {
		return fmt.Errorf("escalation complexity threshold %v outside [0,1]", p.EscalationComplexity)
	}
	if p.EscalationSuspicion < 0 || p.EscalationSuspicion > 1 {
		return fmt.Errorf("escalation suspicion threshold %v outside [0,1]", p.EscalationSuspicion)
	}
	if p.ReviewerAccuracy < 0 || p.ReviewerAccuracy > 1 {
		return fmt.Errorf("reviewer accuracy %v outside [0,1]", p.ReviewerAccuracy)
	}
	if p.FraudCostMultiplier < 1 {
		return fmt.Errorf("fraud cost multiplier %v must be >= 1", p.FraudCostMultiplier)
	}
	return nil
}

// RunConfig is the top-level run parameterization.
type RunConfig struct {
	Seekers  int
	Months   int
	Counties []string
	Seed     int64
	// Policy names the triage policy; see NewTriagePolicy for valid names.
	Policy string
}

// Validate fails fast on configurations that cannot produce a meaningful run.
func (c RunConfig) Validate() error {
	if c.Seekers <= 0 {
		return fmt.Errorf("seekers must be positive, got %d", c.Seekers)
	}
	if c.Months <= 0 {
		return fmt.Errorf("months must be positive, got %d", c.Months)
	}
	if len(c.Counties) == 0 {
		return fmt.Errorf("at least one county is required")
	}
	seen := make(map[string]bool, len(c.Counties))
	for _, county := range c.Counties {
		if county == "" {
			return fmt.Errorf("county name must not be empty")
		}
		if seen[county] {
			return fmt.Errorf("duplicate county %q", county)
		}
		seen[county] = true
	}
	if !IsValidTriagePolicy(c.Policy) {
		return fmt.Errorf("unknown triage policy %q; valid policies: %v", c.Policy, ValidTriagePolicies())
	}
	return nil
}
