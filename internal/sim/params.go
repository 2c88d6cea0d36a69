package sim

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/cleangrid/internal/grid"
)

// ErrInvalidParams is returned by New when the parameters cannot describe a run.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params are the initialization parameters of a run.
type Params struct {
	Width           int
	Height          int
	NumAgents       int
	DirtyPercentage float64
	MaxTime         int
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidParams, p.Width, p.Height)
	case p.Width > grid.MaxCells/p.Height:
		return fmt.Errorf("%w: grid %dx%d exceeds %d cells", ErrInvalidParams, p.Width, p.Height, grid.MaxCells)
	case p.NumAgents < 0:
		return fmt.Errorf("%w: agent count must not be negative, got %d", ErrInvalidParams, p.NumAgents)
	case !(p.DirtyPercentage >= 0 && p.DirtyPercentage <= 1):
		return fmt.Errorf("%w: dirty percentage must be within [0,1], got %g", ErrInvalidParams, p.DirtyPercentage)
	case p.MaxTime < 0:
		return fmt.Errorf("%w: max time must not be negative, got %d", ErrInvalidParams, p.MaxTime)
	}
	return nil
}

// TotalDirtyCells is floor(width*height*dirtyPercentage). It is only
// meaningful for parameters that pass Validate.
func (p Params) TotalDirtyCells() int {
	return int(float64(p.Width*p.Height) * p.DirtyPercentage)
}
