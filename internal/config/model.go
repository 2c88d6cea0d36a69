package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/cleangrid/internal/grid"
)

// ErrInvalidScenario wraps every scenario validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Default scenario values, used for attributes a scenario leaves out and for
// the inline scenario built from CLI flags.
const (
	DefaultWidth           = 20
	DefaultHeight          = 20
	DefaultAgents          = 10
	DefaultDirtyPercentage = 0.6
	DefaultMaxTime         = 200
)

// Model is the unified representation of all loaded scenarios.
type Model struct {
	Scenarios []*Scenario
}

// Scenario is one named parameter set for a simulation run.
type Scenario struct {
	Name            string
	Width           int
	Height          int
	Agents          int
	DirtyPercentage float64
	MaxTime         int
	// Seed pins the random source. Nil means derive one from the root seed.
	Seed *int64
	// Source is where the scenario was declared, for error messages.
	Source string
}

// DefaultScenario returns a scenario populated with the default values.
func DefaultScenario(name string) *Scenario {
	return &Scenario{
		Name:            name,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Agents:          DefaultAgents,
		DirtyPercentage: DefaultDirtyPercentage,
		MaxTime:         DefaultMaxTime,
	}
}

// Validate checks the scenario's parameter ranges.
func (s *Scenario) Validate() error {
	var problem string
	switch {
	case s.Name == "":
		problem = "name must not be empty"
	case s.Width <= 0 || s.Height <= 0:
		problem = fmt.Sprintf("width and height must be positive, got %dx%d", s.Width, s.Height)
	case s.Width > grid.MaxCells/s.Height:
		problem = fmt.Sprintf("width*height must not exceed %d cells, got %dx%d", grid.MaxCells, s.Width, s.Height)
	case s.Agents < 0:
		problem = fmt.Sprintf("agents must not be negative, got %d", s.Agents)
	case !(s.DirtyPercentage >= 0 && s.DirtyPercentage <= 1):
		problem = fmt.Sprintf("dirty_percentage must be within [0,1], got %g", s.DirtyPercentage)
	case s.MaxTime < 0:
		problem = fmt.Sprintf("max_time must not be negative, got %d", s.MaxTime)
	default:
		return nil
	}
	if s.Source != "" {
		return fmt.Errorf("%w %q (%s): %s", ErrInvalidScenario, s.Name, s.Source, problem)
	}
	return fmt.Errorf("%w %q: %s", ErrInvalidScenario, s.Name, problem)
}

// Validate checks every scenario and rejects duplicate names.
func (m *Model) Validate() error {
	seen := make(map[string]string, len(m.Scenarios))
	for _, s := range m.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		if prev, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w %q: declared twice (%s and %s)", ErrInvalidScenario, s.Name, prev, s.Source)
		}
		seen[s.Name] = s.Source
	}
	return nil
}

// Find returns the scenario with the given name.
func (m *Model) Find(name string) (*Scenario, bool) {
	for _, s := range m.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
