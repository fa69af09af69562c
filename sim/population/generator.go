// Package population generates fully-initialized seeker populations from
// county demographic characteristics. It is the engine-side half of the
// population-generator collaborator: loading census/survey source files into
// the CountyProvider happens elsewhere.
package population

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/benefits-sim/benefits-sim/sim"
)

// Strategy selects how seekers are allocated across counties.
type Strategy string

const (
	// Equal splits the population evenly across counties.
	Equal Strategy = "equal"
	// Proportional weights each county by population x poverty rate x the
	// eligible-population multiplier, approximating where benefit-eligible
	// people actually live.
	Proportional Strategy = "proportional"
)

// eligibleMultiplier converts a county's poverty headcount into an estimate
// of its benefit-eligible population.
const eligibleMultiplier = 2.5

// ParseStrategy validates an allocation strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Equal, Proportional:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown allocation strategy %q; valid strategies: [%s, %s]", s, Equal, Proportional)
}

var races = []string{"White", "Black", "Hispanic", "Asian"}

// Income distribution parameters: lognormal around $40k, clipped to the
// modeled eligibility-relevant range.
const (
	incomeLogMean = 10.596634 // ln(40000)
	incomeLogStd  = 0.6
	incomeFloor   = 10_000
	incomeCeiling = 80_000
)

// Generate produces n fully-initialized seekers distributed across counties
// by the given strategy. Deterministic given the same inputs and seed: the
// population subsystem generator drives allocation, and each seeker owns a
// generator derived from it, so one seeker's draws never shift another's.
func Generate(n int, counties []string, strategy Strategy, seed int64,
	mech sim.MechanismConfig, sens sim.SensitivityConfig, provider sim.CountyProvider) ([]*sim.Seeker, error) {

	if n <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", n)
	}
	if len(counties) == 0 {
		return nil, fmt.Errorf("at least one county is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("county provider must not be nil")
	}

	infos := make([]sim.CountyInfo, len(counties))
	for i, county := range counties {
		info, err := provider.County(county)
		if err != nil {
			return nil, fmt.Errorf("resolving county %q: %w", county, err)
		}
		infos[i] = info
	}

	counts, err := allocate(n, infos, strategy)
	if err != nil {
		return nil, err
	}

	popRNG := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemPopulation)

	seekers := make([]*sim.Seeker, 0, n)
	id := 0
	for i, info := range infos {
		logrus.Debugf("allocating %d seekers to %s (population %d)", counts[i], info.Name, info.Population)
		for j := 0; j < counts[i]; j++ {
			// Per-seeker derived generator: the master stream hands out a
			// seed and is never shared with the seeker itself.
			srng := rand.New(rand.NewSource(popRNG.Int63()))

			income := math.Exp(srng.NormFloat64()*incomeLogStd + incomeLogMean)
			income = min(incomeCeiling, max(incomeFloor, income))

			seeker, err := sim.NewSeeker(id, races[id%len(races)], info.Name, income, srng)
			if err != nil {
				return nil, err
			}

			if srng.Float64() < 0.40 {
				seeker.HasChildren = true
				seeker.NumChildren = 1 + srng.Intn(3)
			}
			seeker.HouseholdSize = 2 + seeker.NumChildren
			seeker.HasDisability = srng.Float64() < 0.15

			seeker.FraudPropensity = srng.Float64() * 2
			seeker.LyingMagnitude = srng.Float64() * 100
			seeker.ErrorPropensity = srng.Float64() * 2
			seeker.ErrorMagnitude = srng.Float64() * 20

			seeker.Navigation = navigationBudget(seeker, srng, mech, sens)

			for _, p := range sim.Programs() {
				seeker.Beliefs[p] = 0.5 + srng.Float64()*0.3
			}

			seekers = append(seekers, seeker)
			id++
		}
	}
	return seekers, nil
}

// allocate splits n across counties, assigning remainders left to right.
func allocate(n int, infos []sim.CountyInfo, strategy Strategy) ([]int, error) {
	weights := make([]float64, len(infos))
	switch strategy {
	case Equal:
		for i := range weights {
			weights[i] = 1
		}
	case Proportional:
		for i, info := range infos {
			weights[i] = float64(info.Population) * (info.PovertyRate / 100) * eligibleMultiplier
		}
	default:
		return nil, fmt.Errorf("unknown allocation strategy %q", strategy)
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("allocation weights sum to zero; check county characteristics")
	}

	counts := make([]int, len(infos))
	assigned := 0
	for i, w := range weights {
		counts[i] = int(float64(n) * w / total)
		assigned += counts[i]
	}
	for i := 0; assigned < n; i = (i + 1) % len(counts) {
		counts[i]++
		assigned++
	}
	return counts, nil
}

// navigationBudget draws the seeker's bureaucracy navigation capacity. The
// unlimited variant applies whenever the mechanism is off: investigation
// resistance is then infinite by construction, not by a large number.
func navigationBudget(s *sim.Seeker, rng *rand.Rand, mech sim.MechanismConfig, sens sim.SensitivityConfig) sim.NavigationBudget {
	if !mech.BureaucracyPointsEnabled {
		return sim.UnlimitedNavigation()
	}

	points := 10.0
	if s.HasDisability {
		points -= 2.0 // harder to keep up with process demands
	}
	if s.Income >= 50_000 {
		points += 3.0 // documentation close at hand
	} else if s.Income < 20_000 {
		points -= 2.0
	}
	points += rng.Float64()*4 - 2 // life circumstances

	return sim.NavigationPoints(max(0, points) * sens.BureaucracyPointsMult)
}
