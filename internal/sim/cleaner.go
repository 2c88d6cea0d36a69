// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the CleanerAgent and its per-tick policy: clean one
// marker on the current cell if possible, otherwise attempt one random step.
package sim

import (
	"fmt"

	"github.com/specialistvlad/cleangrid/internal/grid"
)

// Action is the outcome of a single agent step.
type Action int

const (
	// ActionCleaned means the agent cleaned a marker on its cell.
	ActionCleaned Action = iota
	// ActionMoved means the agent stepped to a neighbouring cell.
	ActionMoved
	// ActionBlocked means the drawn direction left the grid and the agent
	// stayed put.
	ActionBlocked
)

func (a Action) String() string {
	switch a {
	case ActionCleaned:
		return "cleaned"
	case ActionMoved:
		return "moved"
	case ActionBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// directions holds the eight neighbouring offsets; (0,0) is excluded.
var directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// CleanerAgent is an autonomous cleaner with a position and a move counter.
type CleanerAgent struct {
	id    int
	pos   grid.Coord
	moves int
}

// ID returns the agent's index within its simulation.
func (a *CleanerAgent) ID() int { return a.id }

// Position implements grid.Occupant.
func (a *CleanerAgent) Position() grid.Coord { return a.pos }

// SetPosition implements grid.Occupant.
func (a *CleanerAgent) SetPosition(c grid.Coord) { a.pos = c }

// MoveCount returns the number of successful moves so far.
func (a *CleanerAgent) MoveCount() int { return a.moves }

// Step runs one tick of the agent's policy against g.
func (a *CleanerAgent) Step(g *grid.Grid, src Source) Action {
	if a.clean(g) {
		return ActionCleaned
	}
	return a.move(g, src)
}

// clean marks the first uncleaned marker sharing the agent's cell.
func (a *CleanerAgent) clean(g *grid.Grid) bool {
	occupants, err := g.OccupantsAt(a.pos)
	if err != nil {
		panic(fmt.Sprintf("sim: agent %d outside the grid: %v", a.id, err))
	}
	for _, o := range occupants {
		if d, ok := o.(*DirtMarker); ok && !d.cleaned {
			d.cleaned = true
			return true
		}
	}
	return false
}

// move draws one of the eight directions and steps there if it stays on the
// grid. A blocked draw is not retried.
func (a *CleanerAgent) move(g *grid.Grid, src Source) Action {
	dir := directions[src.Intn(len(directions))]
	target := a.pos.Offset(dir[0], dir[1])
	if g.IsOutOfBounds(target) {
		return ActionBlocked
	}
	if err := g.Relocate(a, a.pos, target); err != nil {
		panic(fmt.Sprintf("sim: agent %d relocate: %v", a.id, err))
	}
	a.moves++
	return ActionMoved
}
