// Defines the Seeker agent: a simulated individual who may apply for benefit
// programs. Holds identity and economic attributes, belief state, behavioral
// parameters, and the cumulative counters that survive a run.

package sim

import (
	"fmt"
	"math/rand"
)

// === NavigationBudget ===

// NavigationBudget is a seeker's capacity to navigate bureaucratic demands:
// forms, documentation requests, interviews. It is a tagged variant rather
// than a nullable number so the two behaviors are checked exhaustively:
// an Unlimited budget withstands any scrutiny, a bounded one depletes.
type NavigationBudget struct {
	bounded bool
	points  float64
}

// UnlimitedNavigation returns the budget used when the bureaucracy-points
// mechanism is disabled: submission is never blocked and investigation is
// always withstood.
func UnlimitedNavigation() NavigationBudget {
	return NavigationBudget{}
}

// NavigationPoints returns a bounded budget with n points. Negative n is
// clamped to zero.
func NavigationPoints(n float64) NavigationBudget {
	return NavigationBudget{bounded: true, points: max(0, n)}
}

// Unlimited reports whether the budget is the unbounded variant.
func (b NavigationBudget) Unlimited() bool {
	return !b.bounded
}

// Remaining returns the points left and whether the budget is bounded.
func (b NavigationBudget) Remaining() (float64, bool) {
	return b.points, b.bounded
}

// CanSpend reports whether cost points are available.
func (b NavigationBudget) CanSpend(cost float64) bool {
	return !b.bounded || b.points >= cost
}

// Spend consumes cost points. Returns false, leaving the budget untouched,
// if the points are not available.
func (b *NavigationBudget) Spend(cost float64) bool {
	if !b.bounded {
		return true
	}
	if b.points < cost {
		return false
	}
	b.points -= cost
	return true
}

// Withstands reports whether the budget covers a total investigation cost.
// Investigation probes the budget without depleting it: the points model
// capacity to respond, not a spendable currency during review.
func (b NavigationBudget) Withstands(totalCost float64) bool {
	return !b.bounded || b.points >= totalCost
}

// submissionCost is the navigation points consumed by filing one application.
const submissionCost = 1.0

// fraudDetectionsBeforeBan is the three-strike limit of the fraud-history
// mechanism.
const fraudDetectionsBeforeBan = 3

// === Seeker ===

// Seeker is a simulated individual who may apply for benefit programs.
// Created once at population-generation time, mutated every tick it applies,
// never destroyed during a run.
type Seeker struct {
	ID     int
	Race   string
	County string

	Income        float64 // annual, >= 0
	HouseholdSize int
	NumChildren   int
	HasChildren   bool
	HasDisability bool

	// Behavioral parameters, fixed at creation.
	FraudPropensity float64 // [0, 2]; scaled to a 0-50% fabrication chance
	LyingMagnitude  float64 // [0, 100] percent income underreport when lying
	ErrorPropensity float64 // [0, 2]; scaled to a 0-15% honest-mistake chance
	ErrorMagnitude  float64 // [0, 20] percent income misreport on a mistake

	Navigation NavigationBudget

	// Beliefs maps program -> perceived approval probability in [0, 1].
	Beliefs map[Program]float64

	// Enrollments maps program -> month of approval, for recertification.
	Enrollments map[Program]int

	// Cumulative counters; monotonically non-decreasing within a run.
	Applications    int
	Approvals       int
	Denials         int
	Investigations  int
	FraudDetections int

	// BannedSince is the month a three-strike ban took effect; -1 when not
	// banned. Only meaningful under the fraud-history mechanism.
	BannedSince int

	rng *rand.Rand
}

// NewSeeker constructs a seeker with its own generator. Every random draw
// the seeker makes (fabrication, honest error) comes from rng, so seekers
// never contend for a shared random stream. Fails on negative income or a
// nil generator.
func NewSeeker(id int, race, county string, income float64, rng *rand.Rand) (*Seeker, error) {
	if income < 0 {
		return nil, fmt.Errorf("seeker %d: income must be non-negative, got %v", id, income)
	}
	if rng == nil {
		return nil, fmt.Errorf("seeker %d: rng must not be nil", id)
	}
	s := &Seeker{
		ID:            id,
		Race:          race,
		County:        county,
		Income:        income,
		HouseholdSize: 2,
		Navigation:    UnlimitedNavigation(),
		Beliefs:       make(map[Program]float64, len(Programs())),
		Enrollments:   make(map[Program]int),
		BannedSince:   -1,
		rng:           rng,
	}
	for _, p := range Programs() {
		s.Beliefs[p] = 0.5
	}
	return s, nil
}

// MonthlyIncome converts annual income to monthly for eligibility checks.
func (s *Seeker) MonthlyIncome() float64 {
	return s.Income / 12
}

// Banned reports whether the three-strike ban is in effect.
func (s *Seeker) Banned() bool {
	return s.BannedSince >= 0
}

// Enrolled reports current enrollment in a program.
func (s *Seeker) Enrolled(p Program) bool {
	_, ok := s.Enrollments[p]
	return ok
}

// ShouldApply is the deterministic eligibility gate: same seeker attributes
// and month always produce the same answer, with no randomness.
//
// An enrolled seeker does not reapply until recertification is due; an
// expired enrollment is dropped and falls through to the eligibility check.
func (s *Seeker) ShouldApply(p Program, month int) bool {
	if approvedMonth, ok := s.Enrollments[p]; ok {
		if month-approvedMonth < p.RecertMonths() {
			return false
		}
		delete(s.Enrollments, p)
	}

	monthly := s.MonthlyIncome()
	switch p {
	case SNAP:
		return monthly < p.MonthlyIncomeCap()
	case TANF:
		return monthly < p.MonthlyIncomeCap() && s.HasChildren
	case SSI:
		return monthly < p.MonthlyIncomeCap() && s.HasDisability
	}
	return false
}

// WillingToApply applies the belief-driven willingness gate. With learning
// disabled every eligible seeker applies; with learning enabled a seeker
// whose perceived approval probability has sunk below the application
// threshold stops bothering (the discouraged-applicant mechanism).
func (s *Seeker) WillingToApply(p Program, mech MechanismConfig, sens SensitivityConfig) bool {
	if !mech.LearningEnabled {
		return true
	}
	return s.Beliefs[p] >= sens.ApplicationThreshold
}

// Apply runs the full submission pipeline for one program in one month and
// returns the created application, or nil if the seeker does not apply.
// Gates, in order: three-strike ban, deterministic eligibility, belief-driven
// willingness, navigation-point budget. Submission consumes one navigation
// point when the bureaucracy mechanism is on.
func (s *Seeker) Apply(p Program, month, appID int, mech MechanismConfig, sens SensitivityConfig) *Application {
	if mech.FraudHistoryEnabled && s.Banned() {
		return nil
	}

	wasEnrolled := s.Enrolled(p)
	if !s.ShouldApply(p, month) {
		return nil
	}
	if !s.WillingToApply(p, mech, sens) {
		return nil
	}
	if mech.BureaucracyPointsEnabled && !s.Navigation.Spend(submissionCost) {
		return nil
	}

	isFraud := s.rollFraud()
	isError := false
	if !isFraud {
		isError = s.rollError()
	}

	declared := s.Income
	switch {
	case isFraud:
		declared = s.Income * (1.0 - s.LyingMagnitude/100.0)
	case isError:
		pct := s.ErrorMagnitude / 100.0
		if s.rng.Float64() < 0.5 {
			declared = s.Income * (1.0 - pct)
		} else {
			declared = s.Income * (1.0 + pct)
		}
	}

	app := &Application{
		ID:                    appID,
		SeekerID:              s.ID,
		Program:               p,
		Month:                 month,
		DeclaredIncome:        declared,
		DeclaredHouseholdSize: s.HouseholdSize,
		DeclaredDisability:    s.HasDisability,
		TrueIncome:            s.Income,
		TrueHouseholdSize:     s.HouseholdSize,
		TrueDisability:        s.HasDisability,
		IsFraud:               isFraud,
		IsError:               isError,
		Status:                StatusPending,
	}
	// wasEnrolled distinguishes a recertification (records on file) from a
	// brand-new application, which costs more evaluator work.
	app.Complexity = ComplexityScore(p, s, !wasEnrolled)

	s.Applications++
	return app
}

// rollFraud draws the fabricate-this-application decision. Propensity 1.0
// maps to a 25% chance, 2.0 to 50%.
func (s *Seeker) rollFraud() bool {
	return s.rng.Float64() < s.FraudPropensity/4.0
}

// rollError draws the honest-mistake decision. Propensity 2.0 maps to a 15%
// chance, for a realistic overall error rate.
func (s *Seeker) rollError() bool {
	return s.rng.Float64() < s.ErrorPropensity*0.075
}

// ObserveOutcome writes a terminal decision back into the seeker: counters,
// enrollment on approval, and the belief update. With learning enabled the
// perceived approval probability moves toward 1.0 on approval and 0.0 on
// denial by learningRate times the remaining gap; with learning disabled the
// belief is numerically unchanged regardless of outcome.
func (s *Seeker) ObserveOutcome(p Program, status Status, month int, mech MechanismConfig, sens SensitivityConfig) {
	var target float64
	switch status {
	case StatusApproved:
		s.Approvals++
		s.Enrollments[p] = month
		target = 1.0
	case StatusDenied:
		s.Denials++
		target = 0.0
	default:
		// CAPACITY_EXCEEDED carries no signal about approval odds.
		return
	}

	if !mech.LearningEnabled {
		return
	}
	belief := s.Beliefs[p]
	belief += sens.LearningRate * (target - belief)
	s.Beliefs[p] = min(1.0, max(0.0, belief))
}

// RecordInvestigation counts an investigation against the seeker.
func (s *Seeker) RecordInvestigation() {
	s.Investigations++
}

// RecordFraudDetection counts a detection and applies the three-strike ban
// when the fraud-history mechanism is on.
func (s *Seeker) RecordFraudDetection(month int, mech MechanismConfig) {
	s.FraudDetections++
	if mech.FraudHistoryEnabled && !s.Banned() && s.FraudDetections >= fraudDetectionsBeforeBan {
		s.BannedSince = month
	}
}

func (s *Seeker) String() string {
	return fmt.Sprintf("Seeker(id=%d, race=%s, county=%s, income=$%.0f, children=%v)",
		s.ID, s.Race, s.County, s.Income, s.HasChildren)
}
