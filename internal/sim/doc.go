// Package sim implements the cleaning simulation: dirt markers scattered over
// a grid, cleaner agents that clean or wander each tick, and the model loop
// that schedules them and decides when the run is over.
//
// # Tick
//
// Every tick the model first records a metrics snapshot, then visits each
// agent exactly once in a freshly shuffled order. An agent cleans one dirty
// marker on its cell if it can; otherwise it tries a single random step in
// one of the eight neighbouring directions. A step off the edge of the grid
// is discarded. An agent therefore never cleans and moves in the same tick.
//
// # Termination
//
// After the agents act, the tick counter advances and two conditions are
// checked in order: the tick budget (MaxTime) being used up, then every
// marker being clean. The first that holds stops the run for good; any later
// Tick returns ErrStopped.
//
// # Randomness
//
// All randomness comes from the Source handed to New. The shuffle order is
// what decides which of several co-located agents gets to clean a shared
// cell, and it is intentionally left to that source rather than fixed.
package sim
