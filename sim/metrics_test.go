package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countedSeeker(id int, race string, apps, approvals, denials, investigations int) *Seeker {
	return &Seeker{
		ID:             id,
		Race:           race,
		Applications:   apps,
		Approvals:      approvals,
		Denials:        denials,
		Investigations: investigations,
		BannedSince:    -1,
	}
}

func TestSummarize_TotalsAndRates(t *testing.T) {
	m := NewMetrics()
	seekers := []*Seeker{
		countedSeeker(1, "White", 10, 8, 2, 1),
		countedSeeker(2, "White", 10, 6, 4, 0),
		countedSeeker(3, "Black", 10, 4, 6, 3),
		countedSeeker(4, "Black", 10, 2, 8, 2),
	}

	s := m.Summarize(seekers, 24)

	assert.Equal(t, 4, s.TotalSeekers)
	assert.Equal(t, 24, s.TotalMonths)
	assert.Equal(t, 40, s.TotalApplications)
	assert.Equal(t, 20, s.TotalApprovals)
	assert.Equal(t, 20, s.TotalDenials)
	assert.Equal(t, 6, s.TotalInvestigations)
	assert.InDelta(t, 0.5, s.ApprovalRate, 1e-9)

	require.Len(t, s.ApprovalRateByRace, 2)
	assert.InDelta(t, 0.70, s.ApprovalRateByRace["White"], 1e-9)
	assert.InDelta(t, 0.30, s.ApprovalRateByRace["Black"], 1e-9)
	assert.InDelta(t, 0.40, s.MaxApprovalGap, 1e-9)
}

func TestSummarize_NoApplications(t *testing.T) {
	m := NewMetrics()
	s := m.Summarize([]*Seeker{countedSeeker(1, "White", 0, 0, 0, 0)}, 12)

	assert.Zero(t, s.ApprovalRate)
	assert.Empty(t, s.ApprovalRateByRace, "a race with zero applications has no rate")
	assert.Zero(t, s.MaxApprovalGap)
	assert.Zero(t, s.MeanComplexity)
}

func TestSummarize_SingleRaceHasNoGap(t *testing.T) {
	m := NewMetrics()
	s := m.Summarize([]*Seeker{countedSeeker(1, "Hispanic", 10, 5, 5, 0)}, 12)

	assert.InDelta(t, 0.5, s.ApprovalRateByRace["Hispanic"], 1e-9)
	assert.Zero(t, s.MaxApprovalGap, "a one-group run has no disparity to report")
}

func TestSummarize_ComplexityDistribution(t *testing.T) {
	m := NewMetrics()
	// Recorded out of order on purpose.
	for _, c := range []float64{0.9, 0.1, 0.5, 0.3, 0.7} {
		m.ObserveComplexity(c)
	}

	s := m.Summarize(nil, 1)

	assert.InDelta(t, 0.5, s.MeanComplexity, 1e-9)
	assert.InDelta(t, 0.5, s.MedianComplexity, 1e-9)
	assert.InDelta(t, 0.9, s.P90Complexity, 1e-9)
}

func TestRecordMonth_PreservesOrder(t *testing.T) {
	m := NewMetrics()
	for month := 0; month < 3; month++ {
		m.RecordMonth(MonthlyStats{Month: month, Submitted: month * 10})
	}

	require.Len(t, m.Monthly, 3)
	for month, row := range m.Monthly {
		assert.Equal(t, month, row.Month)
		assert.Equal(t, month*10, row.Submitted)
	}
}
