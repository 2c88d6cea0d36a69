// Package metrics holds the append-only history of per-tick aggregate
// snapshots recorded during a simulation run.
package metrics

import (
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Snapshot is the aggregate state of a run at the start of one tick.
type Snapshot struct {
	Tick         int
	PercentClean float64
	TotalMoves   int
}

// snapshotType is the cty object type used when exporting snapshots.
var snapshotType = cty.Object(map[string]cty.Type{
	"tick":          cty.Number,
	"percent_clean": cty.Number,
	"total_moves":   cty.Number,
})

// Log is an append-only sequence of snapshots. The zero value is ready to use.
type Log struct {
	entries []Snapshot
}

// Append adds a snapshot to the end of the log. Ticks must be non-decreasing.
func (l *Log) Append(s Snapshot) {
	if n := len(l.entries); n > 0 && s.Tick < l.entries[n-1].Tick {
		panic(fmt.Sprintf("metrics: snapshot for tick %d appended after tick %d", s.Tick, l.entries[n-1].Tick))
	}
	l.entries = append(l.entries, s)
}

// Len returns the number of recorded snapshots.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all snapshots in recording order.
func (l *Log) Entries() []Snapshot {
	return slices.Clone(l.entries)
}

// Last returns the most recent snapshot, if any.
func (l *Log) Last() (Snapshot, bool) {
	if len(l.entries) == 0 {
		return Snapshot{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// ToCtyValue converts the log into a cty list of snapshot objects.
func (l *Log) ToCtyValue() cty.Value {
	if len(l.entries) == 0 {
		return cty.ListValEmpty(snapshotType)
	}
	vals := make([]cty.Value, 0, len(l.entries))
	for _, s := range l.entries {
		vals = append(vals, cty.ObjectVal(map[string]cty.Value{
			"tick":          cty.NumberIntVal(int64(s.Tick)),
			"percent_clean": cty.NumberFloatVal(s.PercentClean),
			"total_moves":   cty.NumberIntVal(int64(s.TotalMoves)),
		}))
	}
	return cty.ListVal(vals)
}

// MarshalJSON encodes the log as a JSON array of snapshot objects.
func (l *Log) MarshalJSON() ([]byte, error) {
	return ctyjson.Marshal(l.ToCtyValue(), cty.List(snapshotType))
}
