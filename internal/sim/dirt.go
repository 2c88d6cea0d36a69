// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package sim

import "github.com/specialistvlad/cleangrid/internal/grid"

// DirtMarker marks one dirty cell. It never moves; cleaning only flips its
// flag.
type DirtMarker struct {
	pos     grid.Coord
	cleaned bool
}

// Position implements grid.Occupant.
func (d *DirtMarker) Position() grid.Coord { return d.pos }

// SetPosition implements grid.Occupant.
func (d *DirtMarker) SetPosition(c grid.Coord) { d.pos = c }

// IsCleaned reports whether an agent has cleaned this marker.
func (d *DirtMarker) IsCleaned() bool { return d.cleaned }
