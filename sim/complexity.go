package sim

// Complexity scoring: how much evaluator work an application costs, in
// complexity units on [0, 1]. The score is computed once at application
// creation and never recomputed.

const (
	baseComplexitySNAP = 0.30 // income and household only
	baseComplexityTANF = 0.50 // children, work requirements
	baseComplexitySSI  = 0.70 // disability verification

	disabilityModifier     = 0.20 // medical documentation
	newApplicationModifier = 0.15 // no records on file yet

	perChildModifier = 0.03
	maxChildModifier = 0.10

	perHouseholdMemberModifier = 0.05
	maxHouseholdModifier       = 0.15
)

func baseComplexity(p Program) float64 {
	switch p {
	case SNAP:
		return baseComplexitySNAP
	case TANF:
		return baseComplexityTANF
	case SSI:
		return baseComplexitySSI
	}
	return 0.40
}

// ComplexityScore maps a program and applicant context to a complexity cost
// in [0, 1]. isNew marks a first application rather than a recertification;
// recertifications are cheaper because records already exist.
func ComplexityScore(p Program, s *Seeker, isNew bool) float64 {
	c := baseComplexity(p)

	if s.HouseholdSize > 1 {
		c += min(maxHouseholdModifier, float64(s.HouseholdSize-1)*perHouseholdMemberModifier)
	}
	if s.NumChildren > 0 {
		c += min(maxChildModifier, float64(s.NumChildren)*perChildModifier)
	}
	if s.HasDisability {
		c += disabilityModifier
	}
	if isNew {
		c += newApplicationModifier
	}

	return min(1.0, c)
}
