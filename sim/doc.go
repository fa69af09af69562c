// Package sim provides the monthly discrete-time engine that models
// capacity-constrained processing of public-benefit applications.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - seeker.go: Seeker agent state, eligibility, fabrication, belief updates
//   - evaluator.go: the first-stage state machine (PENDING -> APPROVED / DENIED /
//     ESCALATED / CAPACITY_EXCEEDED) and its capacity admission test
//   - simulator.go: the monthly tick loop, office grouping, and write-back
//
// # Architecture
//
// A run is a fixed number of monthly ticks. Each tick, every Seeker decides
// whether to apply for each program, the resulting Applications are grouped
// per (county, program) office, a TriagePolicy reorders each group, and the
// office's Evaluator consumes the ordered queue under a complexity-unit
// capacity budget. Escalated cases flow to the office's Reviewer, whose own
// capacity overflow auto-approves rather than blocks. The asymmetry between
// the two overflow behaviors is the mechanism under study, not a bug.
//
// Population generation lives in sim/population; county characteristics are
// supplied through the CountyProvider interface.
//
// # Determinism
//
// Given identical configuration and seed, two runs produce identical
// decision sequences. Every randomized component (seeker draws, evaluator
// noise, reviewer detection, triage shuffle, population sampling) owns a
// generator derived from the master seed via PartitionedRNG; nothing reads
// shared global random state.
package sim
