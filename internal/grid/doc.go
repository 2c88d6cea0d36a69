// Package grid provides the bounded, non-toroidal 2D plane shared by every
// entity of a simulation run.
//
// A Grid maps cell coordinates to the occupants currently located there. A
// cell may hold any number of occupants at once, so agents and dirt markers
// freely share cells. Each occupant records its own position, and the grid
// keeps that record in step with its occupancy index on every Place and
// Relocate.
//
// Out-of-bounds coordinates are reported as ErrInvalidCoordinate by every
// operation that takes one. A mismatch between an occupant's recorded
// position and the index is a programming error and panics.
package grid
