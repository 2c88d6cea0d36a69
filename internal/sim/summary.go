package sim

import (
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Summary is the observable outcome of a run.
type Summary struct {
	Ticks           int
	Reason          StopReason
	PercentClean    float64 // from the last metrics snapshot
	TotalMoves      int
	CleanedCells    int
	TotalDirtyCells int
}

// Summary reports the run's outputs. PercentClean comes from the last
// recorded snapshot, which reflects the state at the start of the final tick;
// before any tick it falls back to the live value.
func (s *Simulation) Summary() Summary {
	percent := s.PercentClean()
	if last, ok := s.log.Last(); ok {
		percent = last.PercentClean
	}
	return Summary{
		Ticks:           s.currentTick,
		Reason:          s.reason,
		PercentClean:    percent,
		TotalMoves:      s.TotalMoves(),
		CleanedCells:    s.CleanedDirtyCellCount(),
		TotalDirtyCells: s.totalDirtyCells,
	}
}

// SummaryType is the cty object type of an exported Summary.
var SummaryType = cty.Object(map[string]cty.Type{
	"ticks":             cty.Number,
	"reason":            cty.String,
	"percent_clean":     cty.Number,
	"total_moves":       cty.Number,
	"cleaned_cells":     cty.Number,
	"total_dirty_cells": cty.Number,
})

// ToCtyValue converts the summary into a cty object of SummaryType.
func (s Summary) ToCtyValue() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"ticks":             cty.NumberIntVal(int64(s.Ticks)),
		"reason":            cty.StringVal(s.Reason.String()),
		"percent_clean":     cty.NumberFloatVal(s.PercentClean),
		"total_moves":       cty.NumberIntVal(int64(s.TotalMoves)),
		"cleaned_cells":     cty.NumberIntVal(int64(s.CleanedCells)),
		"total_dirty_cells": cty.NumberIntVal(int64(s.TotalDirtyCells)),
	})
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return ctyjson.Marshal(s.ToCtyValue(), SummaryType)
}
