package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMechanismConfig_ActiveMechanisms(t *testing.T) {
	assert.Empty(t, BaselineMechanisms().ActiveMechanisms())
	assert.Equal(t,
		[]string{"bureaucracy_points", "fraud_history", "learning", "state_discrimination"},
		FullModel().ActiveMechanisms())

	partial := MechanismConfig{FraudHistoryEnabled: true, LearningEnabled: true}
	assert.Equal(t, []string{"fraud_history", "learning"}, partial.ActiveMechanisms())
}

func TestSensitivityConfig_VaryKeepsBaselineElsewhere(t *testing.T) {
	varied, err := BaselineSensitivity().Vary("strictness", 0.9)
	require.NoError(t, err)

	assert.Equal(t, 0.9, varied.Strictness)
	assert.Equal(t, "strictness", varied.VariedParameter)
	assert.Equal(t, 0.9, varied.VariedValue)

	base := BaselineSensitivity()
	assert.Equal(t, base.ApprovalRate, varied.ApprovalRate)
	assert.Equal(t, base.LearningRate, varied.LearningRate)
	assert.Equal(t, base.ApplicationThreshold, varied.ApplicationThreshold)
	assert.Equal(t, base.BureaucracyPointsMult, varied.BureaucracyPointsMult)
}

func TestSensitivityConfig_VaryAllParameters(t *testing.T) {
	for _, name := range []string{
		"approval_rate", "learning_rate", "strictness",
		"application_threshold", "bureaucracy_points_mult",
	} {
		varied, err := BaselineSensitivity().Vary(name, 0.42)
		require.NoError(t, err, name)
		assert.Equal(t, name, varied.VariedParameter)
	}

	_, err := BaselineSensitivity().Vary("reviewer_mood", 0.5)
	assert.Error(t, err)
}

func TestSensitivityConfig_Validate(t *testing.T) {
	require.NoError(t, BaselineSensitivity().Validate())

	cases := []struct {
		name   string
		mutate func(*SensitivityConfig)
	}{
		{"approval rate above one", func(c *SensitivityConfig) { c.ApprovalRate = 1.2 }},
		{"negative learning rate", func(c *SensitivityConfig) { c.LearningRate = -0.1 }},
		{"strictness above one", func(c *SensitivityConfig) { c.Strictness = 2.0 }},
		{"negative threshold", func(c *SensitivityConfig) { c.ApplicationThreshold = -0.5 }},
		{"negative points mult", func(c *SensitivityConfig) { c.BureaucracyPointsMult = -1.0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := BaselineSensitivity()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestReviewParams_Validate(t *testing.T) {
	require.NoError(t, DefaultReviewParams().Validate())

	bad := DefaultReviewParams()
	bad.EscalationComplexity = 1.5
	assert.Error(t, bad.Validate())

	bad = DefaultReviewParams()
	bad.ReviewerAccuracy = -0.1
	assert.Error(t, bad.Validate())

	bad = DefaultReviewParams()
	bad.FraudCostMultiplier = 0.5
	assert.Error(t, bad.Validate(), "a multiplier below 1 would make lying cheaper than honesty")
}

func TestRunConfig_Validate(t *testing.T) {
	valid := RunConfig{
		Seekers:  100,
		Months:   24,
		Counties: []string{"Ashford", "Briar"},
		Seed:     42,
		Policy:   PolicyFCFS,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"zero seekers", func(c *RunConfig) { c.Seekers = 0 }},
		{"negative months", func(c *RunConfig) { c.Months = -1 }},
		{"no counties", func(c *RunConfig) { c.Counties = nil }},
		{"empty county name", func(c *RunConfig) { c.Counties = []string{"Ashford", ""} }},
		{"duplicate county", func(c *RunConfig) { c.Counties = []string{"Ashford", "Ashford"} }},
		{"unknown policy", func(c *RunConfig) { c.Policy = "vibes_first" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
