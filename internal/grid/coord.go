// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package grid

import "fmt"

// Coord is a cell coordinate on the grid.
type Coord struct {
	X int
	Y int
}

// Offset returns the coordinate displaced by (dx, dy). The result is not
// bounds checked.
func (c Coord) Offset(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
