// Defines the Application value entity that travels the monthly processing
// pipeline. Carries both what the seeker declared and the ground truth, so
// the fraud-detection machinery can compare the two.

package sim

import "fmt"

// Status is the lifecycle state of an application within a processing pass.
// PENDING transitions to exactly one of the four terminal states.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusApproved         Status = "APPROVED"
	StatusDenied           Status = "DENIED"
	StatusEscalated        Status = "ESCALATED"
	StatusCapacityExceeded Status = "CAPACITY_EXCEEDED"
)

// Application is a single benefit application for one program in one month.
// It is owned by the tick that creates it and discarded after the month's
// statistics are recorded; outcomes persist only as Seeker counters.
type Application struct {
	ID       int
	SeekerID int
	Program  Program
	Month    int

	// Declared figures: what the seeker reported, possibly fabricated.
	DeclaredIncome        float64
	DeclaredHouseholdSize int
	DeclaredDisability    bool

	// True figures: ground truth, visible only to the simulation.
	TrueIncome        float64
	TrueHouseholdSize int
	TrueDisability    bool

	IsFraud bool // intentional underreporting
	IsError bool // honest mistake

	// Complexity is fixed at creation and never recomputed.
	Complexity float64

	// Filled in during processing.
	Suspicion    float64
	Investigated bool
	DenialReason string
	Status       Status
}

// DeclaredMonthlyIncome converts the declared annual income to monthly.
func (a *Application) DeclaredMonthlyIncome() float64 {
	return a.DeclaredIncome / 12
}

// IncomeDiscrepancyPct returns how far declared income falls short of truth,
// as a fraction of true income. Zero for honest applications.
func (a *Application) IncomeDiscrepancyPct() float64 {
	if a.TrueIncome == 0 {
		return 0
	}
	return (a.TrueIncome - a.DeclaredIncome) / a.TrueIncome
}

func (a *Application) String() string {
	kind := "HONEST"
	if a.IsFraud {
		kind = "FRAUD"
	} else if a.IsError {
		kind = "ERROR"
	}
	return fmt.Sprintf("Application(id=%d, seeker=%d, program=%s, %s, complexity=%.2f, status=%s)",
		a.ID, a.SeekerID, a.Program, kind, a.Complexity, a.Status)
}
