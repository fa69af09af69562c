package sim

import "fmt"

// Program identifies one of the modeled benefit categories.
type Program string

const (
	// SNAP is food assistance: the broadest, simplest program.
	SNAP Program = "SNAP"
	// TANF is cash assistance for families with children.
	TANF Program = "TANF"
	// SSI is disability assistance: the narrowest, most complex program.
	SSI Program = "SSI"
)

// Programs returns all modeled programs in canonical processing order.
func Programs() []Program {
	return []Program{SNAP, TANF, SSI}
}

// ParseProgram validates a program name.
func ParseProgram(s string) (Program, error) {
	switch Program(s) {
	case SNAP, TANF, SSI:
		return Program(s), nil
	}
	return "", fmt.Errorf("unknown program %q; valid programs: %v", s, Programs())
}

// MonthlyIncomeCap returns the exclusive monthly-income eligibility
// threshold for the program, in dollars.
func (p Program) MonthlyIncomeCap() float64 {
	switch p {
	case SNAP:
		return 2500
	case TANF:
		return 1000
	case SSI:
		return 1913
	}
	return 0
}

// RecertMonths returns how many months an approval is valid before the
// seeker must reapply for recertification.
func (p Program) RecertMonths() int {
	switch p {
	case SNAP:
		return 6
	case TANF:
		return 12
	case SSI:
		return 36
	}
	return 0
}
