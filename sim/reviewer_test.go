package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReviewer(t *testing.T, capacity float64) *Reviewer {
	t.Helper()
	r, err := NewReviewer("Carver County", SSI, capacity, rand.New(rand.NewSource(13)))
	require.NoError(t, err)
	return r
}

func escalatedApp(id int, complexity float64) *Application {
	return &Application{
		ID:                    id,
		SeekerID:              id,
		Program:               SSI,
		DeclaredIncome:        18_000,
		DeclaredHouseholdSize: 2,
		DeclaredDisability:    true,
		TrueIncome:            18_000,
		TrueHouseholdSize:     2,
		TrueDisability:        true,
		Complexity:            complexity,
		Suspicion:             0.9,
		Status:                StatusEscalated,
	}
}

func TestNewReviewer_RejectsNegativeCapacity(t *testing.T) {
	_, err := NewReviewer("X", SNAP, -0.5, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestReviewer_OverflowAutoApproves(t *testing.T) {
	// The deliberate asymmetry: evaluator overflow blocks, reviewer
	// overflow grants the benefit of the doubt.
	r := testReviewer(t, 1.0)
	mech := BaselineMechanisms()
	params := DefaultReviewParams()

	honest := &Seeker{ID: 1, Navigation: UnlimitedNavigation()}

	first := escalatedApp(1, 0.9)
	require.Equal(t, StatusApproved, r.Review(first, honest, mech, params))
	assert.Equal(t, 1, r.Reviewed)

	overflow := escalatedApp(2, 0.9)
	status := r.Review(overflow, honest, mech, params)
	assert.Equal(t, StatusApproved, status, "over-capacity escalation must be auto-approved, not left pending")
	assert.Equal(t, 1, r.AutoApproved)
	assert.Equal(t, 1, r.Reviewed, "auto-approved case is not investigated")
	assert.InDelta(t, 0.9, r.CapacityUsed, 1e-9, "auto-approval must not consume capacity")
	assert.False(t, overflow.Investigated)
}

func TestReviewer_PointsInvestigationDetectsExhaustedSeeker(t *testing.T) {
	mech := MechanismConfig{BureaucracyPointsEnabled: true}
	r := testReviewer(t, 100.0)
	params := DefaultReviewParams()

	// High-suspicion SSI escalation selects actions costing well over 10
	// points. A seeker with 3 points cannot withstand it, honest or not.
	depleted := &Seeker{ID: 1, Navigation: NavigationPoints(3)}
	app := escalatedApp(1, 0.5)

	status := r.Review(app, depleted, mech, params)
	assert.Equal(t, StatusDenied, status)
	assert.Equal(t, "failed investigation: unable to verify claims", app.DenialReason)
	assert.Equal(t, 1, depleted.Investigations)
}

func TestReviewer_PointsInvestigationHonestHighCapacitySurvives(t *testing.T) {
	mech := MechanismConfig{BureaucracyPointsEnabled: true}
	r := testReviewer(t, 100.0)

	resilient := &Seeker{ID: 1, Navigation: NavigationPoints(50)}
	app := escalatedApp(1, 0.5)

	assert.Equal(t, StatusApproved, r.Review(app, resilient, mech, DefaultReviewParams()))
}

func TestReviewer_FraudPaysDoubleInvestigationCost(t *testing.T) {
	mech := MechanismConfig{BureaucracyPointsEnabled: true}
	params := DefaultReviewParams()

	// Low-suspicion SNAP case selects only the basic income check (cost 2).
	// 3 points withstand the honest cost but not the doubled fraud cost.
	app := func(fraud bool) *Application {
		a := escalatedApp(1, 0.5)
		a.Program = SNAP
		a.Suspicion = 0.1
		a.IsFraud = fraud
		return a
	}

	honest := &Seeker{ID: 1, Navigation: NavigationPoints(3)}
	assert.Equal(t, StatusApproved, testReviewer(t, 100).Review(app(false), honest, mech, params))

	liar := &Seeker{ID: 2, Navigation: NavigationPoints(3)}
	assert.Equal(t, StatusDenied, testReviewer(t, 100).Review(app(true), liar, mech, params))
}

func TestReviewer_ProbabilisticPathNeverFlagsAccurateApplications(t *testing.T) {
	// With bureaucracy points off, detection is an accuracy draw that can
	// only fire against applications that misstate something.
	r := testReviewer(t, 1000.0)
	honest := &Seeker{ID: 1}

	for i := 0; i < 50; i++ {
		app := escalatedApp(i, 0.5)
		if got := r.Review(app, honest, BaselineMechanisms(), DefaultReviewParams()); got != StatusApproved {
			t.Fatalf("accurate application %d: got %s, want APPROVED", i, got)
		}
	}
}

func TestReviewer_ProbabilisticPathCatchesMostFraud(t *testing.T) {
	r := testReviewer(t, 10_000.0)
	mech := BaselineMechanisms()
	params := DefaultReviewParams() // 85% accuracy

	liar := &Seeker{ID: 1}
	denied := 0
	for i := 0; i < 200; i++ {
		app := escalatedApp(i, 0.5)
		app.IsFraud = true
		app.DeclaredIncome = 9_000
		if r.Review(app, liar, mech, params) == StatusDenied {
			denied++
		}
	}
	if denied < 150 || denied == 200 {
		t.Errorf("denied %d/200 fraudulent escalations, want roughly 85%%", denied)
	}
	assert.Equal(t, denied, r.FraudDetected)
}

func TestReviewer_FalsePositiveCountsHonestErrors(t *testing.T) {
	mech := MechanismConfig{BureaucracyPointsEnabled: true}
	r := testReviewer(t, 100.0)

	app := escalatedApp(1, 0.5)
	app.IsError = true
	depleted := &Seeker{ID: 1, Navigation: NavigationPoints(1), BannedSince: -1}

	require.Equal(t, StatusDenied, r.Review(app, depleted, mech, DefaultReviewParams()))
	assert.Equal(t, 1, r.FalsePositives)
	assert.Equal(t, 1, r.FraudDetected)
	assert.False(t, depleted.Banned(), "an honest error is not a fraud strike")
}

func TestReviewer_ThreeStrikesBanViaReview(t *testing.T) {
	mech := MechanismConfig{BureaucracyPointsEnabled: true, FraudHistoryEnabled: true}
	r := testReviewer(t, 100.0)

	liar := &Seeker{ID: 1, Navigation: NavigationPoints(0), BannedSince: -1}
	for i := 0; i < 3; i++ {
		app := escalatedApp(i, 0.5)
		app.IsFraud = true
		app.Month = i
		require.Equal(t, StatusDenied, r.Review(app, liar, mech, DefaultReviewParams()))
	}
	assert.True(t, liar.Banned())
	assert.Equal(t, 2, liar.BannedSince)
}

func TestReviewer_ResetMonthZeroesUsage(t *testing.T) {
	r := testReviewer(t, 10.0)
	r.Review(escalatedApp(1, 0.9), &Seeker{ID: 1}, BaselineMechanisms(), DefaultReviewParams())
	require.Greater(t, r.CapacityUsed, 0.0)

	r.ResetMonth()
	assert.Zero(t, r.CapacityUsed)
	assert.Equal(t, 1, r.Reviewed)
}
