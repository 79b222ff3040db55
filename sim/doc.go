// Package sim provides the core discrete-time simulation engine for a
// medical/dental-supply distribution warehouse.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - state.go: the snapshot aggregate and the functional-update discipline
//   - clock.go: the tick driver and the fixed per-tick stage pipeline
//   - arrivals.go: the stochastic order/truck arrival processes
//
// # Architecture
//
// Every tick is a strict pipeline over one snapshot:
//
//	advance time -> progress tasks -> generate arrivals ->
//	allocate workers (orders, then trucks) -> roll the calendar day
//
// Each stage consumes the previous stage's snapshot and returns a new
// one; State.Clone guarantees no mutable storage is shared across stage
// boundaries. UI-facing operations (pause, speed, cell click) are pure
// snapshot transforms serialized with ticks by the Runner.
//
// All randomness flows through PartitionedRNG, so a run is a pure
// function of (config, seed) and tests can fix a seed and assert exact
// arrival and allocation sequences.
package sim
