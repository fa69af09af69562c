package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benefits-sim/benefits-sim/sim"
)

func testProvider(t *testing.T) sim.StaticCounties {
	t.Helper()
	provider, err := sim.NewStaticCounties(
		sim.CountyInfo{Name: "Ashford", Population: 1_200_000, MedianIncome: 61_000, PovertyRate: 12.0},
		sim.CountyInfo{Name: "Briar", Population: 250_000, MedianIncome: 52_000, PovertyRate: 14.2},
		sim.CountyInfo{Name: "Carver", Population: 58_761, MedianIncome: 38_500, PovertyRate: 22.8},
	)
	require.NoError(t, err)
	return provider
}

func generate(t *testing.T, n int, strategy Strategy, seed int64) []*sim.Seeker {
	t.Helper()
	seekers, err := Generate(n, []string{"Ashford", "Briar", "Carver"}, strategy, seed,
		sim.FullModel(), sim.BaselineSensitivity(), testProvider(t))
	require.NoError(t, err)
	return seekers
}

func TestGenerate_Determinism(t *testing.T) {
	a := generate(t, 120, Proportional, 42)
	b := generate(t, 120, Proportional, 42)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].County, b[i].County)
		assert.Equal(t, a[i].Race, b[i].Race)
		assert.Equal(t, a[i].Income, b[i].Income)
		assert.Equal(t, a[i].NumChildren, b[i].NumChildren)
		assert.Equal(t, a[i].HasDisability, b[i].HasDisability)
		assert.Equal(t, a[i].FraudPropensity, b[i].FraudPropensity)
		assert.Equal(t, a[i].Beliefs, b[i].Beliefs)
		assert.Equal(t, a[i].Navigation, b[i].Navigation)
	}
}

func TestGenerate_SeedDivergence(t *testing.T) {
	a := generate(t, 120, Equal, 1)
	b := generate(t, 120, Equal, 2)

	diverged := false
	for i := range a {
		if a[i].Income != b[i].Income {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "different seeds must draw different populations")
}

func TestGenerate_EqualAllocation(t *testing.T) {
	seekers := generate(t, 90, Equal, 42)

	byCounty := make(map[string]int)
	for _, s := range seekers {
		byCounty[s.County]++
	}
	assert.Equal(t, map[string]int{"Ashford": 30, "Briar": 30, "Carver": 30}, byCounty)
}

func TestGenerate_ProportionalAllocationFollowsNeed(t *testing.T) {
	seekers := generate(t, 300, Proportional, 42)

	byCounty := make(map[string]int)
	for _, s := range seekers {
		byCounty[s.County]++
	}
	assert.Equal(t, 300, byCounty["Ashford"]+byCounty["Briar"]+byCounty["Carver"])
	// Ashford's poverty headcount dwarfs the others even at a lower rate.
	assert.Greater(t, byCounty["Ashford"], byCounty["Briar"])
	assert.Greater(t, byCounty["Briar"], byCounty["Carver"])
	assert.Greater(t, byCounty["Carver"], 0, "remainder assignment keeps small counties populated")
}

func TestGenerate_SeekerAttributesInRange(t *testing.T) {
	seekers := generate(t, 200, Equal, 42)

	for _, s := range seekers {
		assert.GreaterOrEqual(t, s.Income, 10_000.0)
		assert.LessOrEqual(t, s.Income, 80_000.0)
		assert.Equal(t, 2+s.NumChildren, s.HouseholdSize)
		assert.Equal(t, s.NumChildren > 0, s.HasChildren)
		assert.GreaterOrEqual(t, s.FraudPropensity, 0.0)
		assert.LessOrEqual(t, s.FraudPropensity, 2.0)
		assert.LessOrEqual(t, s.LyingMagnitude, 100.0)
		for _, p := range sim.Programs() {
			belief := s.Beliefs[p]
			assert.GreaterOrEqual(t, belief, 0.5)
			assert.LessOrEqual(t, belief, 0.8)
		}
		remaining, bounded := s.Navigation.Remaining()
		require.True(t, bounded)
		assert.GreaterOrEqual(t, remaining, 0.0)
	}
}

func TestGenerate_UnlimitedNavigationWhenMechanismOff(t *testing.T) {
	seekers, err := Generate(10, []string{"Carver"}, Equal, 42,
		sim.BaselineMechanisms(), sim.BaselineSensitivity(), testProvider(t))
	require.NoError(t, err)

	for _, s := range seekers {
		assert.True(t, s.Navigation.Unlimited())
	}
}

func TestGenerate_PointsMultiplierScalesBudgets(t *testing.T) {
	sens := sim.BaselineSensitivity()
	doubled, err := sens.Vary("bureaucracy_points_mult", 2.0)
	require.NoError(t, err)

	base, err := Generate(50, []string{"Carver"}, Equal, 42, sim.FullModel(), sens, testProvider(t))
	require.NoError(t, err)
	scaled, err := Generate(50, []string{"Carver"}, Equal, 42, sim.FullModel(), doubled, testProvider(t))
	require.NoError(t, err)

	for i := range base {
		br, _ := base[i].Navigation.Remaining()
		sr, _ := scaled[i].Navigation.Remaining()
		assert.InDelta(t, br*2, sr, 1e-9, "seeker %d", i)
	}
}

func TestGenerate_Rejections(t *testing.T) {
	provider := testProvider(t)
	mech, sens := sim.FullModel(), sim.BaselineSensitivity()

	_, err := Generate(0, []string{"Carver"}, Equal, 1, mech, sens, provider)
	assert.Error(t, err)

	_, err = Generate(10, nil, Equal, 1, mech, sens, provider)
	assert.Error(t, err)

	_, err = Generate(10, []string{"Atlantis"}, Equal, 1, mech, sens, provider)
	assert.Error(t, err)

	_, err = Generate(10, []string{"Carver"}, Strategy("vibes"), 1, mech, sens, provider)
	assert.Error(t, err)

	_, err = Generate(10, []string{"Carver"}, Equal, 1, mech, sens, nil)
	assert.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"equal", "proportional"} {
		got, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, Strategy(name), got)
	}
	_, err := ParseStrategy("stratified")
	assert.Error(t, err)
}
