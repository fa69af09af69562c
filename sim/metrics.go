// Tracks per-month aggregate counts and end-of-run summary statistics,
// including the per-race approval-rate disparity the model exists to study.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MonthlyStats is one row of per-month aggregate counts.
type MonthlyStats struct {
	Month            int
	Submitted        int
	Approved         int
	Denied           int
	Escalated        int
	CapacityExceeded int
	FraudAttempted   int
	ErrorsMade       int
	Honest           int
}

// Metrics aggregates statistics across the run for final reporting.
type Metrics struct {
	Monthly []MonthlyStats

	complexities []float64
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordMonth appends one month's aggregate row.
func (m *Metrics) RecordMonth(row MonthlyStats) {
	m.Monthly = append(m.Monthly, row)
}

// ObserveComplexity records a created application's complexity for the
// end-of-run distribution summary.
func (m *Metrics) ObserveComplexity(c float64) {
	m.complexities = append(m.complexities, c)
}

// Summary is the end-of-run rollup exposed to collaborators.
type Summary struct {
	TotalSeekers        int
	TotalMonths         int
	TotalApplications   int
	TotalApprovals      int
	TotalDenials        int
	TotalInvestigations int

	ApprovalRate       float64
	ApprovalRateByRace map[string]float64
	// MaxApprovalGap is the spread between the best- and worst-served
	// racial groups' approval rates: the headline disparity figure.
	MaxApprovalGap float64

	MeanComplexity   float64
	MedianComplexity float64
	P90Complexity    float64
}

// Summarize computes the end-of-run summary from final seeker counters.
func (m *Metrics) Summarize(seekers []*Seeker, months int) Summary {
	s := Summary{
		TotalSeekers:       len(seekers),
		TotalMonths:        months,
		ApprovalRateByRace: make(map[string]float64),
	}

	appsByRace := make(map[string]int)
	approvalsByRace := make(map[string]int)
	for _, sk := range seekers {
		s.TotalApplications += sk.Applications
		s.TotalApprovals += sk.Approvals
		s.TotalDenials += sk.Denials
		s.TotalInvestigations += sk.Investigations
		appsByRace[sk.Race] += sk.Applications
		approvalsByRace[sk.Race] += sk.Approvals
	}

	if s.TotalApplications > 0 {
		s.ApprovalRate = float64(s.TotalApprovals) / float64(s.TotalApplications)
	}

	lowest, highest := 1.0, 0.0
	for race, apps := range appsByRace {
		if apps == 0 {
			continue
		}
		rate := float64(approvalsByRace[race]) / float64(apps)
		s.ApprovalRateByRace[race] = rate
		lowest = min(lowest, rate)
		highest = max(highest, rate)
	}
	if len(s.ApprovalRateByRace) > 1 {
		s.MaxApprovalGap = highest - lowest
	}

	if len(m.complexities) > 0 {
		sorted := make([]float64, len(m.complexities))
		copy(sorted, m.complexities)
		sort.Float64s(sorted)
		s.MeanComplexity = stat.Mean(sorted, nil)
		s.MedianComplexity = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		s.P90Complexity = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	}

	return s
}

// Print displays the summary at the end of the simulation.
func (s Summary) Print() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Seekers              : %d over %d months\n", s.TotalSeekers, s.TotalMonths)
	fmt.Printf("Applications         : %d\n", s.TotalApplications)
	fmt.Printf("Approved             : %d\n", s.TotalApprovals)
	fmt.Printf("Denied               : %d\n", s.TotalDenials)
	fmt.Printf("Investigations       : %d\n", s.TotalInvestigations)
	if s.TotalApplications > 0 {
		fmt.Printf("Approval Rate        : %.1f%%\n", s.ApprovalRate*100)
		fmt.Printf("Mean Complexity      : %.3f (median %.3f, p90 %.3f)\n",
			s.MeanComplexity, s.MedianComplexity, s.P90Complexity)
	}
	if len(s.ApprovalRateByRace) > 0 {
		races := make([]string, 0, len(s.ApprovalRateByRace))
		for race := range s.ApprovalRateByRace {
			races = append(races, race)
		}
		sort.Strings(races)
		for _, race := range races {
			fmt.Printf("  Approval (%-8s)  : %.1f%%\n", race, s.ApprovalRateByRace[race]*100)
		}
		fmt.Printf("Max Approval Gap     : %.1f pp\n", s.MaxApprovalGap*100)
	}
}
