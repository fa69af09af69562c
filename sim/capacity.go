package sim

// Staff capacity scales linearly with county population, so small counties
// have proportionally less slack against a demand spike. That linearity is a
// deliberate design point of the model, not a simplification to improve later.

const (
	evaluatorResidentsPerStaff = 50_000
	evaluatorUnitsPerStaff     = 20.0

	reviewerResidentsPerStaff = 100_000
	reviewerUnitsPerStaff     = 10.0
)

// EvaluatorCapacity returns the monthly first-stage processing budget for a
// county, in complexity units.
func EvaluatorCapacity(population int) float64 {
	return float64(population) / evaluatorResidentsPerStaff * evaluatorUnitsPerStaff
}

// ReviewerCapacity returns the monthly escalated-review budget for a county,
// in complexity units. Reviewers are specialists: half the staffing ratio
// and half the unit throughput of evaluators.
func ReviewerCapacity(population int) float64 {
	return float64(population) / reviewerResidentsPerStaff * reviewerUnitsPerStaff
}
