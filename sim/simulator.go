// sim/simulator.go
//
// The monthly tick loop. Each tick: reset capacity pools, collect
// applications from every seeker, group them per (county, program) office,
// triage each group, run the evaluator pass, run the reviewer pass over the
// escalations, write outcomes back to seekers, and record the month's row.

package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Simulator drives a fixed number of monthly ticks over a generated
// population. Single-threaded and strictly sequential: a month-tick is the
// unit of atomicity, and every capacity pool is reset only at tick
// boundaries.
type Simulator struct {
	Config      RunConfig
	Mechanisms  MechanismConfig
	Sensitivity SensitivityConfig
	Params      ReviewParams

	Seekers    []*Seeker
	Evaluators map[OfficeKey]*Evaluator
	Reviewers  map[OfficeKey]*Reviewer
	Metrics    *Metrics

	Month int

	rng        *PartitionedRNG
	policy     TriagePolicy
	seekerByID map[int]*Seeker
	// offices holds the (county, program) keys in deterministic order:
	// config county order crossed with canonical program order. Map
	// iteration order must never reach a decision path.
	offices   []OfficeKey
	nextAppID int
}

// Results is the Runner's product, exposed to collaborators.
type Results struct {
	RunID      uuid.UUID
	Monthly    []MonthlyStats
	Seekers    []*Seeker
	Evaluators map[OfficeKey]*Evaluator
	Reviewers  map[OfficeKey]*Reviewer
	Summary    Summary
}

// NewSimulator wires a simulator from validated configuration, the county
// characteristics provider, and an already-generated population. Staff
// capacity is derived from county population; each office's evaluator and
// reviewer own generators partitioned from the master seed.
func NewSimulator(cfg RunConfig, mech MechanismConfig, sens SensitivityConfig, params ReviewParams,
	provider CountyProvider, seekers []*Seeker) (*Simulator, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if err := sens.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sensitivity config: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid review params: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("county provider must not be nil")
	}
	if len(seekers) == 0 {
		return nil, fmt.Errorf("population is empty")
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	policy, err := NewTriagePolicy(cfg.Policy, rng.ForSubsystem(SubsystemTriage))
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		Config:      cfg,
		Mechanisms:  mech,
		Sensitivity: sens,
		Params:      params,
		Seekers:     seekers,
		Evaluators:  make(map[OfficeKey]*Evaluator),
		Reviewers:   make(map[OfficeKey]*Reviewer),
		Metrics:     NewMetrics(),
		rng:         rng,
		policy:      policy,
		seekerByID:  make(map[int]*Seeker, len(seekers)),
	}

	counties := make(map[string]bool, len(cfg.Counties))
	for _, county := range cfg.Counties {
		counties[county] = true
	}
	for _, sk := range seekers {
		if _, dup := s.seekerByID[sk.ID]; dup {
			return nil, fmt.Errorf("duplicate seeker id %d", sk.ID)
		}
		// A seeker outside every configured county would submit into a group
		// no office drains; its applications would never reach a terminal
		// status.
		if !counties[sk.County] {
			return nil, fmt.Errorf("seeker %d: county %q has no configured office", sk.ID, sk.County)
		}
		s.seekerByID[sk.ID] = sk
	}

	for _, county := range cfg.Counties {
		info, err := provider.County(county)
		if err != nil {
			return nil, fmt.Errorf("resolving county %q: %w", county, err)
		}
		for _, program := range Programs() {
			key := OfficeKey{County: county, Program: program}

			ev, err := NewEvaluator(county, program, EvaluatorCapacity(info.Population),
				rng.ForSubsystem(SubsystemOffice(county, program, "evaluator")))
			if err != nil {
				return nil, err
			}
			rv, err := NewReviewer(county, program, ReviewerCapacity(info.Population),
				rng.ForSubsystem(SubsystemOffice(county, program, "reviewer")))
			if err != nil {
				return nil, err
			}

			s.Evaluators[key] = ev
			s.Reviewers[key] = rv
			s.offices = append(s.offices, key)
		}
	}

	return s, nil
}

// Run executes the configured number of monthly ticks and returns the
// results. Every tick runs to completion; there is no cancellation model.
func (s *Simulator) Run() *Results {
	logrus.Infof("starting simulation: %d seekers, %d months, %d counties, policy=%s, mechanisms=%v",
		len(s.Seekers), s.Config.Months, len(s.Config.Counties), s.policy.Name(),
		s.Mechanisms.ActiveMechanisms())

	for month := 0; month < s.Config.Months; month++ {
		row := s.RunMonth(month)
		logrus.Debugf("[month %03d] submitted=%d approved=%d denied=%d escalated=%d capacity_exceeded=%d",
			month, row.Submitted, row.Approved, row.Denied, row.Escalated, row.CapacityExceeded)
	}
	logrus.Infof("simulation ended after %d months", s.Config.Months)

	return &Results{
		RunID:      uuid.New(),
		Monthly:    s.Metrics.Monthly,
		Seekers:    s.Seekers,
		Evaluators: s.Evaluators,
		Reviewers:  s.Reviewers,
		Summary:    s.Metrics.Summarize(s.Seekers, s.Config.Months),
	}
}

// RunMonth executes a single tick and returns its statistics row.
func (s *Simulator) RunMonth(month int) MonthlyStats {
	s.Month = month

	// (a) Idempotent capacity reset at the tick boundary.
	for _, key := range s.offices {
		s.Evaluators[key].ResetMonth()
		s.Reviewers[key].ResetMonth()
	}

	row := MonthlyStats{Month: month}

	// (b) Every seeker decides, per program, whether to apply.
	groups := make(map[OfficeKey]*PendingQueue)
	for _, seeker := range s.Seekers {
		for _, program := range Programs() {
			app := seeker.Apply(program, month, s.nextAppID, s.Mechanisms, s.Sensitivity)
			if app == nil {
				continue
			}
			s.nextAppID++
			row.Submitted++
			switch {
			case app.IsFraud:
				row.FraudAttempted++
			case app.IsError:
				row.ErrorsMade++
			default:
				row.Honest++
			}
			s.Metrics.ObserveComplexity(app.Complexity)

			// (c) Group by the owning office.
			key := OfficeKey{County: seeker.County, Program: program}
			q, ok := groups[key]
			if !ok {
				q = &PendingQueue{}
				groups[key] = q
			}
			q.Enqueue(app)
		}
	}

	lookup := func(id int) (*Seeker, bool) {
		sk, ok := s.seekerByID[id]
		return sk, ok
	}

	for _, key := range s.offices {
		q, ok := groups[key]
		if !ok {
			continue
		}
		evaluator := s.Evaluators[key]
		reviewer := s.Reviewers[key]

		// (d) Triage reorders the month's queue; (e) the evaluator consumes
		// it under capacity.
		var escalations []*Application
		for _, app := range s.policy.Order(q.Drain(), lookup) {
			seeker := s.seekerByID[app.SeekerID]
			switch evaluator.Process(app, seeker, s.Mechanisms, s.Sensitivity, s.Params) {
			case StatusApproved:
				row.Approved++
				s.writeBack(seeker, app)
			case StatusDenied:
				row.Denied++
				s.writeBack(seeker, app)
			case StatusEscalated:
				row.Escalated++
				escalations = append(escalations, app)
			case StatusCapacityExceeded:
				row.CapacityExceeded++
			}
		}

		// (f) The reviewer consumes the escalation queue; its overflow
		// auto-approves inside Review.
		for _, app := range escalations {
			seeker := s.seekerByID[app.SeekerID]
			switch reviewer.Review(app, seeker, s.Mechanisms, s.Params) {
			case StatusApproved:
				row.Approved++
			case StatusDenied:
				row.Denied++
			}
			s.writeBack(seeker, app)
		}
	}

	// (h) Record the month's aggregate row.
	s.Metrics.RecordMonth(row)
	return row
}

// writeBack propagates a resolved status into the owning seeker's counters,
// enrollment, and beliefs.
func (s *Simulator) writeBack(seeker *Seeker, app *Application) {
	if seeker == nil {
		return
	}
	seeker.ObserveOutcome(app.Program, app.Status, app.Month, s.Mechanisms, s.Sensitivity)
}
