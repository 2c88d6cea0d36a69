// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Simulation model: ownership of the grid and its
// entities, the tick loop, termination and the aggregate metrics. Agents and
// dirt are held in separate slices; only the grid mixes the two kinds.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/cleangrid/internal/ctxlog"
	"github.com/specialistvlad/cleangrid/internal/grid"
	"github.com/specialistvlad/cleangrid/internal/metrics"
)

// ErrStopped is returned by Tick once the run has terminated.
var ErrStopped = errors.New("simulation already stopped")

// Source is the random source a simulation draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// StopReason tells which termination condition ended a run.
type StopReason int

const (
	// StopNone means the run is still going.
	StopNone StopReason = iota
	// StopTimeExhausted means the tick budget was used up.
	StopTimeExhausted
	// StopRoomClean means every dirt marker was cleaned.
	StopRoomClean
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopTimeExhausted:
		return "time_exhausted"
	case StopRoomClean:
		return "room_clean"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// preferredStart is where agents start unless the grid is too small.
var preferredStart = grid.Coord{X: 1, Y: 1}

// Simulation owns the grid, every entity on it and the run state.
type Simulation struct {
	params          Params
	grid            *grid.Grid
	src             Source
	agents          []*CleanerAgent
	order           []*CleanerAgent
	dirt            []*DirtMarker
	totalDirtyCells int
	currentTick     int
	running         bool
	reason          StopReason
	log             metrics.Log
}

// New builds a simulation: it scatters floor(w*h*p) dirt markers over
// distinct random cells and puts every agent on the start cell.
func New(p Params, src Source) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidParams)
	}

	g, err := grid.New(p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	s := &Simulation{
		params:          p,
		grid:            g,
		src:             src,
		totalDirtyCells: p.TotalDirtyCells(),
		running:         true,
	}

	cells := g.Cells()
	src.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	s.dirt = make([]*DirtMarker, 0, s.totalDirtyCells)
	for _, c := range cells[:s.totalDirtyCells] {
		d := &DirtMarker{}
		if err := g.Place(d, c); err != nil {
			return nil, fmt.Errorf("placing dirt: %w", err)
		}
		s.dirt = append(s.dirt, d)
	}

	start := preferredStart
	if g.IsOutOfBounds(start) {
		start = grid.Coord{}
	}
	s.agents = make([]*CleanerAgent, 0, p.NumAgents)
	for i := 0; i < p.NumAgents; i++ {
		a := &CleanerAgent{id: i}
		if err := g.Place(a, start); err != nil {
			return nil, fmt.Errorf("placing agent %d: %w", i, err)
		}
		s.agents = append(s.agents, a)
	}
	s.order = make([]*CleanerAgent, len(s.agents))
	copy(s.order, s.agents)

	return s, nil
}

// Grid returns the simulation's grid.
func (s *Simulation) Grid() *grid.Grid { return s.grid }

// Params returns the parameters the simulation was built with.
func (s *Simulation) Params() Params { return s.params }

// Agents returns the agents in creation order.
func (s *Simulation) Agents() []*CleanerAgent {
	out := make([]*CleanerAgent, len(s.agents))
	copy(out, s.agents)
	return out
}

// Dirt returns the dirt markers in placement order.
func (s *Simulation) Dirt() []*DirtMarker {
	out := make([]*DirtMarker, len(s.dirt))
	copy(out, s.dirt)
	return out
}

// Running reports whether the run has not terminated yet.
func (s *Simulation) Running() bool { return s.running }

// CurrentTick returns the number of ticks executed so far.
func (s *Simulation) CurrentTick() int { return s.currentTick }

// StopReason returns why the run stopped, or StopNone while it is running.
func (s *Simulation) StopReason() StopReason { return s.reason }

// TotalDirtyCells returns the number of markers placed at init.
func (s *Simulation) TotalDirtyCells() int { return s.totalDirtyCells }

// Metrics returns the per-tick snapshot history.
func (s *Simulation) Metrics() *metrics.Log { return &s.log }

// CleanedDirtyCellCount counts the markers that have been cleaned.
func (s *Simulation) CleanedDirtyCellCount() int {
	n := 0
	for _, d := range s.dirt {
		if d.cleaned {
			n++
		}
	}
	return n
}

// PercentClean is the cleaned fraction of markers in [0,1]; 1 when there was
// no dirt to begin with.
func (s *Simulation) PercentClean() float64 {
	if s.totalDirtyCells == 0 {
		return 1.0
	}
	return float64(s.CleanedDirtyCellCount()) / float64(s.totalDirtyCells)
}

// TotalMoves sums the move counters of all agents.
func (s *Simulation) TotalMoves() int {
	total := 0
	for _, a := range s.agents {
		total += a.moves
	}
	return total
}

// Tick advances the run by one step. It returns ErrStopped if the run has
// already terminated.
//
// With a zero tick budget the first call only records the initial snapshot
// and stops the run; no agent acts and the tick counter stays at zero.
func (s *Simulation) Tick(ctx context.Context) error {
	if !s.running {
		return ErrStopped
	}
	logger := ctxlog.FromContext(ctx)

	s.log.Append(s.snapshot())

	if s.currentTick >= s.params.MaxTime {
		s.stop(ctx, StopTimeExhausted)
		return nil
	}

	s.src.Shuffle(len(s.order), func(i, j int) { s.order[i], s.order[j] = s.order[j], s.order[i] })
	var cleaned, moved, blocked int
	for _, a := range s.order {
		switch a.Step(s.grid, s.src) {
		case ActionCleaned:
			cleaned++
		case ActionMoved:
			moved++
		case ActionBlocked:
			blocked++
		}
	}
	s.currentTick++
	logger.Debug("Tick complete.", "tick", s.currentTick, "cleaned", cleaned, "moved", moved, "blocked", blocked)

	switch {
	case s.currentTick >= s.params.MaxTime:
		s.stop(ctx, StopTimeExhausted)
	case s.CleanedDirtyCellCount() == s.totalDirtyCells:
		s.stop(ctx, StopRoomClean)
	}
	return nil
}

// Run ticks until a termination condition fires or ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) (Summary, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Simulation starting.",
		"width", s.params.Width,
		"height", s.params.Height,
		"agents", len(s.agents),
		"dirty_cells", s.totalDirtyCells,
		"max_time", s.params.MaxTime,
	)

	for s.running {
		if err := ctx.Err(); err != nil {
			return s.Summary(), fmt.Errorf("simulation interrupted at tick %d: %w", s.currentTick, err)
		}
		if err := s.Tick(ctx); err != nil {
			return s.Summary(), err
		}
	}

	summary := s.Summary()
	logger.Info("Simulation finished.",
		"ticks", summary.Ticks,
		"reason", summary.Reason.String(),
		"percent_clean", summary.PercentClean,
		"total_moves", summary.TotalMoves,
	)
	return summary, nil
}

func (s *Simulation) snapshot() metrics.Snapshot {
	return metrics.Snapshot{
		Tick:         s.currentTick,
		PercentClean: s.PercentClean(),
		TotalMoves:   s.TotalMoves(),
	}
}

func (s *Simulation) stop(ctx context.Context, reason StopReason) {
	if !s.running {
		panic("sim: stop called twice")
	}
	s.running = false
	s.reason = reason
	ctxlog.FromContext(ctx).Debug("Termination condition reached.", "tick", s.currentTick, "reason", reason.String())
}
