// Reviewer: the capacity-gated second-stage processor for escalated cases.
// Its overflow policy is the deliberate mirror image of the evaluator's:
// escalated cases beyond capacity are auto-approved (fail-open) rather than
// left pending. The evaluator blocks on overflow, the reviewer grants the
// benefit of the doubt; that asymmetry is a core behavior under test.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// investigationAction is one verification step a reviewer can take, costed
// in the navigation points it demands from the applicant.
type investigationAction struct {
	name string
	cost float64
}

var investigationActions = map[string]investigationAction{
	"basic_income_check":     {"basic_income_check", 2},
	"request_pay_stubs":      {"request_pay_stubs", 3},
	"bank_statements":        {"bank_statements", 4},
	"employer_verification":  {"employer_verification", 3},
	"interview":              {"interview", 4},
	"medical_verification":   {"medical_verification", 6},
	"household_verification": {"household_verification", 3},
	"home_visit":             {"home_visit", 5},
}

// Reviewer is the specialist pool for one office's escalated cases.
type Reviewer struct {
	County  string
	Program Program

	MonthlyCapacity float64
	CapacityUsed    float64

	// Cumulative counters across the whole run.
	Reviewed       int
	Approved       int
	Denied         int
	FraudDetected  int
	FalsePositives int // honest-error applications denied
	AutoApproved   int // overflow grants

	rng *rand.Rand
}

// NewReviewer constructs an office reviewer; negative capacity fails fast.
func NewReviewer(county string, program Program, capacity float64, rng *rand.Rand) (*Reviewer, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("reviewer %s/%s: negative monthly capacity %v", county, program, capacity)
	}
	if rng == nil {
		return nil, fmt.Errorf("reviewer %s/%s: rng must not be nil", county, program)
	}
	return &Reviewer{
		County:          county,
		Program:         program,
		MonthlyCapacity: capacity,
		rng:             rng,
	}, nil
}

// Key returns the office key this reviewer serves.
func (r *Reviewer) Key() OfficeKey {
	return OfficeKey{County: r.County, Program: r.Program}
}

// ResetMonth zeroes the capacity counter at the start of a tick.
func (r *Reviewer) ResetMonth() {
	r.CapacityUsed = 0
}

// Review resolves one escalated application to APPROVED or DENIED.
//
// Admission test first, against the reviewer's own complexity-unit budget;
// an over-capacity case is auto-approved without being investigated or
// charged. Within capacity, detection runs through the points-based
// investigation when the bureaucracy mechanism is on, or the probabilistic
// accuracy draw otherwise.
func (r *Reviewer) Review(app *Application, seeker *Seeker, mech MechanismConfig, params ReviewParams) Status {
	if r.CapacityUsed+app.Complexity > r.MonthlyCapacity {
		r.AutoApproved++
		r.Approved++
		app.Status = StatusApproved
		logrus.Debugf("[%s] review capacity exhausted, application %d auto-approved", r.Key(), app.ID)
		return StatusApproved
	}
	r.CapacityUsed += app.Complexity
	r.Reviewed++

	app.Investigated = true
	if seeker != nil {
		seeker.RecordInvestigation()
	}

	detected := r.investigate(app, seeker, mech, params)
	if detected {
		app.DenialReason = "failed investigation: unable to verify claims"
		r.Denied++
		if app.IsFraud || app.IsError {
			r.FraudDetected++
		}
		if app.IsError && !app.IsFraud {
			r.FalsePositives++
		}
		if seeker != nil && app.IsFraud {
			seeker.RecordFraudDetection(app.Month, mech)
		}
		app.Status = StatusDenied
		return StatusDenied
	}

	r.Approved++
	app.Status = StatusApproved
	return StatusApproved
}

// investigate reports whether the review fires as a fraud detection.
func (r *Reviewer) investigate(app *Application, seeker *Seeker, mech MechanismConfig, params ReviewParams) bool {
	if mech.BureaucracyPointsEnabled && seeker != nil {
		return r.pointsInvestigation(app, seeker, params)
	}
	// Probabilistic fallback: accuracy draw fires only against applications
	// that actually misstate something.
	if app.IsFraud || app.IsError {
		return r.rng.Float64() < params.ReviewerAccuracy
	}
	return false
}

// pointsInvestigation totals the cost of the selected verification actions
// and asks whether the seeker's navigation budget withstands it. Fraudulent
// applications pay the multiplier on every action: maintaining a lie under
// each successive probe costs more than telling the truth. A seeker whose
// points run out is treated as a detection, honest or not; that is the
// structural-inequality mechanism.
func (r *Reviewer) pointsInvestigation(app *Application, seeker *Seeker, params ReviewParams) bool {
	total := 0.0
	for _, name := range r.selectActions(app) {
		cost := investigationActions[name].cost
		if app.IsFraud {
			cost *= params.FraudCostMultiplier
		}
		total += cost
	}
	return !seeker.Navigation.Withstands(total)
}

// selectActions chooses verification steps from suspicion, program, and
// complexity, deduplicated in selection order.
func (r *Reviewer) selectActions(app *Application) []string {
	var names []string
	names = append(names, "basic_income_check")

	if app.Suspicion > 0.5 {
		names = append(names, "request_pay_stubs", "household_verification")
	}
	if app.Suspicion > 0.7 {
		names = append(names, "bank_statements", "interview")
	}
	if app.Suspicion > 0.85 {
		names = append(names, "employer_verification")
	}
	if app.Program == SSI && app.DeclaredDisability {
		names = append(names, "medical_verification")
	}
	if app.Program == TANF {
		names = append(names, "household_verification")
	}
	if app.Complexity > 0.8 {
		names = append(names, "home_visit")
	}

	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
