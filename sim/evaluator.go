// Evaluator: the capacity-gated first-stage processor for one (county,
// program) office. Consumes the triaged queue and drives each application
// from PENDING to a terminal status for this month's pass.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// OfficeKey identifies the (county, program) office that owns a capacity pool.
type OfficeKey struct {
	County  string
	Program Program
}

func (k OfficeKey) String() string {
	return fmt.Sprintf("%s/%s", k.County, k.Program)
}

// Evaluator is a front-line processing pool for one office. Its monthly
// capacity is a complexity-unit budget derived from county population.
type Evaluator struct {
	County  string
	Program Program

	MonthlyCapacity float64
	CapacityUsed    float64

	// Cumulative counters across the whole run.
	Processed          int
	Approved           int
	Denied             int
	Escalated          int
	FraudDetected      int
	CapacityRejections int

	rng *rand.Rand
}

// NewEvaluator constructs an office evaluator. Negative capacity is a
// configuration error, not something to clamp silently.
func NewEvaluator(county string, program Program, capacity float64, rng *rand.Rand) (*Evaluator, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("evaluator %s/%s: negative monthly capacity %v", county, program, capacity)
	}
	if rng == nil {
		return nil, fmt.Errorf("evaluator %s/%s: rng must not be nil", county, program)
	}
	return &Evaluator{
		County:          county,
		Program:         program,
		MonthlyCapacity: capacity,
		rng:             rng,
	}, nil
}

// Key returns the office key this evaluator serves.
func (e *Evaluator) Key() OfficeKey {
	return OfficeKey{County: e.County, Program: e.Program}
}

// ResetMonth zeroes the capacity counter at the start of a tick. Unused
// capacity never carries over between months.
func (e *Evaluator) ResetMonth() {
	e.CapacityUsed = 0
}

// Process drives one application through the first-stage state machine.
//
// The admission test comes first: if charging this application's complexity
// would push usage past the monthly budget, the application is rejected for
// capacity without being processed or charged. Partial processing does not
// exist; the test is the invariant, not a post-hoc clamp.
func (e *Evaluator) Process(app *Application, seeker *Seeker, mech MechanismConfig, sens SensitivityConfig, params ReviewParams) Status {
	if e.CapacityUsed+app.Complexity > e.MonthlyCapacity {
		e.CapacityRejections++
		app.Status = StatusCapacityExceeded
		logrus.Debugf("[%s] application %d rejected for capacity (%.2f used of %.2f)",
			e.Key(), app.ID, e.CapacityUsed, e.MonthlyCapacity)
		return StatusCapacityExceeded
	}
	e.CapacityUsed += app.Complexity
	e.Processed++

	app.Suspicion = e.scoreSuspicion(app, seeker, mech, params)

	// Declared-figures eligibility. Fabricated income can make an
	// ineligible applicant look eligible; that is what the fraud check and
	// escalation path exist to catch.
	if !e.declaredEligible(app) {
		app.DenialReason = "income above program limit"
		e.Denied++
		app.Status = StatusDenied
		return StatusDenied
	}

	if app.Complexity > params.EscalationComplexity || app.Suspicion > params.EscalationSuspicion {
		e.Escalated++
		app.Status = StatusEscalated
		return StatusEscalated
	}

	// Fraud check: only when fraud tracking is enabled, and only for cases
	// suspicious enough to warrant pulling records. The draw is conditioned
	// on the declared-vs-true gap and the seeker's underlying propensity.
	if mech.FraudHistoryEnabled && app.Suspicion > sens.Strictness {
		app.Investigated = true
		if e.detects(app, seeker, params) {
			app.DenialReason = "failed verification"
			e.Denied++
			if app.IsFraud {
				e.FraudDetected++
			}
			app.Status = StatusDenied
			return StatusDenied
		}
	}

	if e.rng.Float64() < sens.ApprovalRate {
		e.Approved++
		app.Status = StatusApproved
		return StatusApproved
	}
	app.DenialReason = "discretionary denial"
	e.Denied++
	app.Status = StatusDenied
	return StatusDenied
}

// declaredEligible checks program rules against what the applicant declared.
func (e *Evaluator) declaredEligible(app *Application) bool {
	monthly := app.DeclaredMonthlyIncome()
	switch app.Program {
	case SNAP:
		return monthly < SNAP.MonthlyIncomeCap()
	case TANF:
		return monthly < TANF.MonthlyIncomeCap() && app.DeclaredHouseholdSize >= 2
	case SSI:
		return monthly < SSI.MonthlyIncomeCap() && app.DeclaredDisability
	}
	return false
}

// scoreSuspicion combines declared-figure red flags, evaluator judgment
// noise, and (when the mechanism is on) the state-level discrimination
// adjustment for the applicant's race. Clamped to [0, 1].
func (e *Evaluator) scoreSuspicion(app *Application, seeker *Seeker, mech MechanismConfig, params ReviewParams) float64 {
	score := 0.0

	monthly := app.DeclaredMonthlyIncome()
	switch {
	case monthly < 1000:
		score += 0.3 // possible underreporting
	case monthly < 2000:
		score += 0.1
	}
	if app.DeclaredHouseholdSize >= 5 {
		score += 0.2 // harder to verify
	}
	if app.Program == SSI {
		score += 0.3 // disability claims always draw scrutiny
	}

	if mech.StateDiscriminationEnabled && seeker != nil {
		score += params.RaceSuspicionBias[seeker.Race]
	}

	score += e.rng.NormFloat64() * 0.1
	return min(1.0, max(0.0, score))
}

// detects draws the fraud-check outcome. Honest, accurate applications have
// zero discrepancy and only the small propensity term.
func (e *Evaluator) detects(app *Application, seeker *Seeker, params ReviewParams) bool {
	p := abs(app.IncomeDiscrepancyPct()) * params.DiscrepancyWeight
	if seeker != nil {
		p += seeker.FraudPropensity * params.PropensityWeight
	}
	return e.rng.Float64() < min(1.0, p)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
