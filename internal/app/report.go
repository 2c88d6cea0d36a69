package app

import (
	"fmt"
	"io"
	"os"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// writeReport prints the human readable summary of one run.
func writeReport(w io.Writer, res Result) error {
	s := res.Scenario
	sum := res.Summary
	_, err := fmt.Fprintf(w, `Scenario %q (seed %d)
Simulating: %dx%d, %d agents, %.1f%% dirt, %d max steps.
--- Simulation Finished ---
Stop reason: %s
Time required: %d steps
Percentage of clean cells: %.2f%%
Cleaned cells: %d/%d
Total number of moves (all agents): %d

`,
		s.Name, res.Seed,
		s.Width, s.Height, s.Agents, s.DirtyPercentage*100, s.MaxTime,
		sum.Reason,
		sum.Ticks,
		sum.PercentClean*100,
		sum.CleanedCells, sum.TotalDirtyCells,
		sum.TotalMoves,
	)
	return err
}

// reportValue is the machine readable form of one run: the scenario's
// parameters, the seed used and the run summary.
func reportValue(res Result) cty.Value {
	s := res.Scenario
	return cty.ObjectVal(map[string]cty.Value{
		"scenario":         cty.StringVal(s.Name),
		"seed":             cty.NumberIntVal(res.Seed),
		"width":            cty.NumberIntVal(int64(s.Width)),
		"height":           cty.NumberIntVal(int64(s.Height)),
		"agents":           cty.NumberIntVal(int64(s.Agents)),
		"dirty_percentage": cty.NumberFloatVal(s.DirtyPercentage),
		"max_time":         cty.NumberIntVal(int64(s.MaxTime)),
		"summary":          res.Summary.ToCtyValue(),
	})
}

// writeJSONReport prints one run as a single JSON line.
func writeJSONReport(w io.Writer, res Result) error {
	val := reportValue(res)
	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}

// historyValue builds a cty object keyed by scenario name whose values are
// the per-tick metrics histories.
func historyValue(results []Result) cty.Value {
	if len(results) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(results))
	for _, r := range results {
		attrs[r.Scenario.Name] = r.History.ToCtyValue()
	}
	return cty.ObjectVal(attrs)
}

// writeHistory encodes the metrics histories as JSON.
func writeHistory(w io.Writer, results []Result) error {
	val := historyValue(results)
	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return fmt.Errorf("failed to encode metrics history: %w", err)
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}

func writeHistoryFile(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	if err := writeHistory(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
