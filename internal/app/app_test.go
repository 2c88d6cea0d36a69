package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/cleangrid/internal/hcl"
	"github.com/specialistvlad/cleangrid/internal/sim"
	"github.com/specialistvlad/cleangrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds an App writing its report and debug logs to buffers.
func setupApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logs)
	return NewApp(out, logs, validated, hcl.NewLoader()), out, logs
}

const roomsHCL = `
scenario "tiny" {
  width            = 2
  height           = 2
  agents           = 1
  dirty_percentage = 1.0
  max_time         = 1000
  seed             = 3
}

scenario "empty_room" {
  width            = 5
  height           = 5
  agents           = 0
  dirty_percentage = 0.5
  max_time         = 50
}
`

func TestRun_InlineScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Agents, cfg.MaxTime = 5, 5, 0, 50
	cfg.DirtyPercentage = 0.5
	cfg.Seed = 99

	a, out, logs := setupApp(t, cfg)
	results, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "inline", res.Scenario.Name)
	assert.Equal(t, int64(99), res.Seed)
	assert.Equal(t, 50, res.Summary.Ticks)
	assert.Equal(t, sim.StopTimeExhausted, res.Summary.Reason)
	assert.Equal(t, 0, res.Summary.TotalMoves)
	assert.Equal(t, 50, res.History.Len())

	assert.Contains(t, out.String(), "Simulating: 5x5, 0 agents, 50.0% dirt, 50 max steps.")
	assert.Contains(t, out.String(), "Time required: 50 steps")
	assert.Contains(t, out.String(), "Percentage of clean cells: 0.00%")
	assert.Contains(t, out.String(), "Total number of moves (all agents): 0")
	assert.Contains(t, logs.String(), "Simulation finished.")
}

func TestRun_ScenarioFile(t *testing.T) {
	path := testutil.WriteScenario(t, roomsHCL)
	cfg := DefaultConfig()
	cfg.ScenarioPath = path
	cfg.Seed = 1

	a, out, _ := setupApp(t, cfg)
	results, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	tiny := results[0]
	assert.Equal(t, "tiny", tiny.Scenario.Name)
	assert.Equal(t, int64(3), tiny.Seed, "a pinned scenario seed wins over the root seed")
	assert.Equal(t, sim.StopRoomClean, tiny.Summary.Reason)
	assert.Equal(t, 4, tiny.Summary.CleanedCells)

	empty := results[1]
	assert.Equal(t, "empty_room", empty.Scenario.Name)
	assert.Equal(t, 50, empty.Summary.Ticks)
	assert.Equal(t, 0, empty.Summary.TotalMoves)

	assert.Contains(t, out.String(), `Scenario "tiny" (seed 3)`)
	assert.Contains(t, out.String(), `Scenario "empty_room"`)
	assert.Contains(t, out.String(), "Stop reason: room_clean")
}

func TestRun_SameRootSeedIsReproducible(t *testing.T) {
	path := testutil.WriteScenario(t, `
scenario "mid" {
  width  = 8
  height = 8
  agents = 3
}
`)
	cfg := DefaultConfig()
	cfg.ScenarioPath = path
	cfg.Seed = 1234

	a1, _, _ := setupApp(t, cfg)
	first, err := a1.Run(context.Background())
	require.NoError(t, err)
	a2, _, _ := setupApp(t, cfg)
	second, err := a2.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first[0].Seed, second[0].Seed)
	assert.Equal(t, first[0].Summary, second[0].Summary)
}

func TestRun_SelectByName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScenarioPath = testutil.WriteScenario(t, roomsHCL)
	cfg.ScenarioName = "empty_room"

	a, _, _ := setupApp(t, cfg)
	results, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "empty_room", results[0].Scenario.Name)
}

func TestRun_UnknownScenarioName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScenarioPath = testutil.WriteScenario(t, roomsHCL)
	cfg.ScenarioName = "ballroom"

	a, _, _ := setupApp(t, cfg)
	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "ballroom" not found`)
}

func TestRun_LoadErrorIsWrapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScenarioPath = testutil.WriteScenario(t, `scenario "x" {`)

	a, _, _ := setupApp(t, cfg)
	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load scenarios")
}

func TestRun_EmptyScenarioDirectory(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"rooms/readme.txt": "nothing here"})
	cfg := DefaultConfig()
	cfg.ScenarioPath = filepath.Join(root, "rooms")

	a, _, _ := setupApp(t, cfg)
	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios found")
}

func TestRun_JSONReport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScenarioPath = testutil.WriteScenario(t, roomsHCL)
	cfg.ReportFormat = "json"
	cfg.Seed = 1

	a, out, _ := setupApp(t, cfg)
	results, err := a.Run(context.Background())
	require.NoError(t, err)

	type report struct {
		Scenario        string  `json:"scenario"`
		Seed            int64   `json:"seed"`
		Width           int     `json:"width"`
		DirtyPercentage float64 `json:"dirty_percentage"`
		Summary         struct {
			Ticks        int    `json:"ticks"`
			Reason       string `json:"reason"`
			CleanedCells int    `json:"cleaned_cells"`
		} `json:"summary"`
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var tiny, empty report
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &tiny))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &empty))

	assert.Equal(t, "tiny", tiny.Scenario)
	assert.Equal(t, int64(3), tiny.Seed)
	assert.Equal(t, 2, tiny.Width)
	assert.Equal(t, "room_clean", tiny.Summary.Reason)
	assert.Equal(t, results[0].Summary.Ticks, tiny.Summary.Ticks)
	assert.Equal(t, 4, tiny.Summary.CleanedCells)

	assert.Equal(t, "empty_room", empty.Scenario)
	assert.Equal(t, results[1].Seed, empty.Seed)
	assert.Equal(t, 0.5, empty.DirtyPercentage)
	assert.Equal(t, "time_exhausted", empty.Summary.Reason)
	assert.Equal(t, 50, empty.Summary.Ticks)
	assert.NotContains(t, out.String(), "Simulation Finished")
}

func TestRun_WritesHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScenarioPath = testutil.WriteScenario(t, roomsHCL)
	cfg.HistoryPath = filepath.Join(t.TempDir(), "history.json")

	a, _, _ := setupApp(t, cfg)
	results, err := a.Run(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(cfg.HistoryPath)
	require.NoError(t, err)

	var history map[string][]struct {
		Tick         int     `json:"tick"`
		PercentClean float64 `json:"percent_clean"`
		TotalMoves   int     `json:"total_moves"`
	}
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 2)
	assert.Len(t, history["empty_room"], 50)
	assert.Len(t, history["tiny"], results[0].History.Len())
	assert.Equal(t, 0, history["tiny"][0].Tick)
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5

	a, _, _ := setupApp(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
