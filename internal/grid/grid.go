// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Grid, the spatial container every simulation entity
// lives in. Each cell keeps its occupants in placement order, and Relocate
// checks an occupant against that index before moving it.
package grid

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCoordinate is returned when a coordinate lies outside the grid.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// MaxCells caps width*height so cell indexing never overflows int.
const MaxCells = 1 << 24

// CellCount returns width*height, or false when either dimension is not
// positive or the product exceeds MaxCells.
func CellCount(width, height int) (int, bool) {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return 0, false
	}
	return width * height, true
}

// Occupant is anything that can be placed on the grid.
type Occupant interface {
	Position() Coord
	SetPosition(Coord)
}

// Grid is a fixed width x height plane without wraparound.
type Grid struct {
	width  int
	height int
	cells  [][]Occupant // row-major, index y*width+x
}

// New creates an empty grid with the given dimensions.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if _, ok := CellCount(width, height); !ok {
		return nil, fmt.Errorf("grid %dx%d exceeds %d cells", width, height, MaxCells)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([][]Occupant, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// IsOutOfBounds reports whether c falls outside [0,width) x [0,height).
func (g *Grid) IsOutOfBounds(c Coord) bool {
	return c.X < 0 || c.X >= g.width || c.Y < 0 || c.Y >= g.height
}

// Cells returns every coordinate of the grid in row-major order.
func (g *Grid) Cells() []Coord {
	coords := make([]Coord, 0, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			coords = append(coords, Coord{X: x, Y: y})
		}
	}
	return coords
}

// OccupantsAt returns the occupants of cell c in placement order. The
// returned slice is a copy and may be modified by the caller.
func (g *Grid) OccupantsAt(c Coord) ([]Occupant, error) {
	idx, err := g.index(c)
	if err != nil {
		return nil, err
	}
	return slices.Clone(g.cells[idx]), nil
}

// Place records c as the occupant's position and adds it to that cell.
func (g *Grid) Place(o Occupant, c Coord) error {
	idx, err := g.index(c)
	if err != nil {
		return err
	}
	o.SetPosition(c)
	g.cells[idx] = append(g.cells[idx], o)
	return nil
}

// Relocate moves an occupant from one cell to another and updates its
// recorded position. The target must be in bounds. It panics if the occupant
// is not indexed under from.
func (g *Grid) Relocate(o Occupant, from, to Coord) error {
	toIdx, err := g.index(to)
	if err != nil {
		return err
	}
	fromIdx, err := g.index(from)
	if err != nil {
		panic(fmt.Sprintf("grid: relocate from %s: %v", from, err))
	}
	if o.Position() != from {
		panic(fmt.Sprintf("grid: occupant records position %s but was relocated from %s", o.Position(), from))
	}

	cell := g.cells[fromIdx]
	pos := slices.Index(cell, o)
	if pos < 0 {
		panic(fmt.Sprintf("grid: occupant not indexed at %s", from))
	}
	g.cells[fromIdx] = slices.Delete(cell, pos, pos+1)
	g.cells[toIdx] = append(g.cells[toIdx], o)
	o.SetPosition(to)
	return nil
}

func (g *Grid) index(c Coord) (int, error) {
	if g.IsOutOfBounds(c) {
		return 0, fmt.Errorf("%w: %s outside %dx%d grid", ErrInvalidCoordinate, c, g.width, g.height)
	}
	return c.Y*g.width + c.X, nil
}
