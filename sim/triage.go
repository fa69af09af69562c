// Triage policies: the pluggable functions that order a month's pending
// applications before capacity-gated processing. Because the evaluator's
// capacity cutoff is order-dependent, a policy's entire effect is who gets
// pushed past the capacity boundary; none of the processing rules differ.

package sim

import (
	"fmt"
	"math/rand"
	"sort"
)

// SeekerLookup resolves a seeker id for policies that need applicant
// attributes. A miss returns ok=false; policies degrade gracefully on
// misses rather than aborting the run.
type SeekerLookup func(id int) (*Seeker, bool)

// TriagePolicy reorders a month's pending applications. Order MUST be pure:
// it returns a fresh slice and never mutates the input slice or its
// elements. Deterministic given its inputs (and its own seeded generator,
// for the random policy).
type TriagePolicy interface {
	Name() string
	Order(apps []*Application, lookup SeekerLookup) []*Application
}

// Policy names accepted by NewTriagePolicy.
const (
	PolicySimpleFirst  = "simple_first"
	PolicyComplexFirst = "complex_first"
	PolicyRandom       = "random"
	PolicyNeedBased    = "need_based"
	PolicyFCFS         = "fcfs"
)

// ValidTriagePolicies returns the closed set of policy names.
func ValidTriagePolicies() []string {
	return []string{PolicySimpleFirst, PolicyComplexFirst, PolicyRandom, PolicyNeedBased, PolicyFCFS}
}

// IsValidTriagePolicy reports whether name is a known policy.
func IsValidTriagePolicy(name string) bool {
	switch name {
	case PolicySimpleFirst, PolicyComplexFirst, PolicyRandom, PolicyNeedBased, PolicyFCFS:
		return true
	}
	return false
}

// NewTriagePolicy creates a triage policy by name. The random policy
// requires a seeded generator: an unseeded shuffle is a configuration error
// for any run that claims reproducibility, not a silent default.
func NewTriagePolicy(name string, rng *rand.Rand) (TriagePolicy, error) {
	switch name {
	case PolicySimpleFirst:
		return &SimpleFirstTriage{}, nil
	case PolicyComplexFirst:
		return &ComplexFirstTriage{}, nil
	case PolicyRandom:
		if rng == nil {
			return nil, fmt.Errorf("random triage policy requires a seeded generator")
		}
		return &RandomTriage{rng: rng}, nil
	case PolicyNeedBased:
		return &NeedBasedTriage{}, nil
	case PolicyFCFS:
		return &FCFSTriage{}, nil
	}
	return nil, fmt.Errorf("unknown triage policy %q; valid policies: %v", name, ValidTriagePolicies())
}

func copyApps(apps []*Application) []*Application {
	out := make([]*Application, len(apps))
	copy(out, apps)
	return out
}

// SimpleFirstTriage orders ascending by complexity, the "process more cases
// with the same staff" pitch. Ties keep original order.
type SimpleFirstTriage struct{}

func (t *SimpleFirstTriage) Name() string { return PolicySimpleFirst }

func (t *SimpleFirstTriage) Order(apps []*Application, _ SeekerLookup) []*Application {
	out := copyApps(apps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Complexity < out[j].Complexity
	})
	return out
}

// ComplexFirstTriage orders descending by complexity. Ties keep original order.
type ComplexFirstTriage struct{}

func (t *ComplexFirstTriage) Name() string { return PolicyComplexFirst }

func (t *ComplexFirstTriage) Order(apps []*Application, _ SeekerLookup) []*Application {
	out := copyApps(apps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Complexity > out[j].Complexity
	})
	return out
}

// RandomTriage shuffles with its own seeded generator: a lottery, fair in
// expectation, reproducible in fact.
type RandomTriage struct {
	rng *rand.Rand
}

func (t *RandomTriage) Name() string { return PolicyRandom }

func (t *RandomTriage) Order(apps []*Application, _ SeekerLookup) []*Application {
	out := copyApps(apps)
	t.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// NeedBasedTriage orders ascending by seeker income, serving the neediest
// first. An application whose seeker cannot be resolved sorts to the end.
type NeedBasedTriage struct{}

func (t *NeedBasedTriage) Name() string { return PolicyNeedBased }

func (t *NeedBasedTriage) Order(apps []*Application, lookup SeekerLookup) []*Application {
	income := func(app *Application) (float64, bool) {
		if lookup == nil {
			return 0, false
		}
		s, ok := lookup(app.SeekerID)
		if !ok {
			return 0, false
		}
		return s.Income, true
	}
	out := copyApps(apps)
	sort.SliceStable(out, func(i, j int) bool {
		vi, oki := income(out[i])
		vj, okj := income(out[j])
		if oki != okj {
			return oki // resolved seekers before unknown ones, at any income
		}
		return vi < vj
	})
	return out
}

// FCFSTriage preserves submission order exactly (no reordering).
type FCFSTriage struct{}

func (t *FCFSTriage) Name() string { return PolicyFCFS }

func (t *FCFSTriage) Order(apps []*Application, _ SeekerLookup) []*Application {
	return copyApps(apps)
}
