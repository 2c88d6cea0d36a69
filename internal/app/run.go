package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cleangrid/internal/config"
	"github.com/specialistvlad/cleangrid/internal/ctxlog"
	"github.com/specialistvlad/cleangrid/internal/metrics"
	"github.com/specialistvlad/cleangrid/internal/rng"
	"github.com/specialistvlad/cleangrid/internal/sim"
)

// Result is the outcome of one scenario run.
type Result struct {
	Scenario *config.Scenario
	Seed     int64
	Summary  sim.Summary
	History  *metrics.Log
}

// Run loads the configured scenarios, simulates each in turn and writes a
// report for every one of them.
func (a *App) Run(ctx context.Context) ([]Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	scenarios, err := a.scenarios(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Scenarios selected.", "count", len(scenarios))

	rootSeed := a.config.Seed
	if rootSeed == 0 {
		rootSeed = rng.TimeSeed()
		a.logger.Debug("No seed given, using a time based root seed.", "seed", rootSeed)
	}

	results := make([]Result, 0, len(scenarios))
	for _, scenario := range scenarios {
		res, err := a.runScenario(ctx, scenario, rootSeed)
		if err != nil {
			return results, err
		}
		write := writeReport
		if a.config.ReportFormat == "json" {
			write = writeJSONReport
		}
		if err := write(a.outW, res); err != nil {
			return results, fmt.Errorf("failed to write report: %w", err)
		}
		results = append(results, res)
	}

	if a.config.HistoryPath != "" {
		if err := writeHistoryFile(a.config.HistoryPath, results); err != nil {
			return results, err
		}
		a.logger.Info("Metrics history written.", "path", a.config.HistoryPath)
	}

	a.logger.Debug("App.Run method finished.")
	return results, nil
}

// scenarios returns the scenarios to run, either loaded from disk or built
// from the inline flags.
func (a *App) scenarios(ctx context.Context) ([]*config.Scenario, error) {
	if a.config.ScenarioPath == "" {
		a.logger.Debug("No scenario path, using inline scenario.")
		return []*config.Scenario{a.config.inlineScenario()}, nil
	}

	model, err := a.loader.Load(ctx, a.config.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}
	if len(model.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", a.config.ScenarioPath)
	}

	if a.config.ScenarioName == "" {
		return model.Scenarios, nil
	}
	s, ok := model.Find(a.config.ScenarioName)
	if !ok {
		return nil, fmt.Errorf("scenario %q not found in %s", a.config.ScenarioName, a.config.ScenarioPath)
	}
	return []*config.Scenario{s}, nil
}

func (a *App) runScenario(ctx context.Context, scenario *config.Scenario, rootSeed int64) (Result, error) {
	seed := rng.DeriveSeed(rootSeed, scenario.Name)
	if scenario.Seed != nil {
		seed = *scenario.Seed
	}
	ctx = ctxlog.With(ctx, "scenario", scenario.Name, "seed", seed)

	simulation, err := sim.New(sim.Params{
		Width:           scenario.Width,
		Height:          scenario.Height,
		NumAgents:       scenario.Agents,
		DirtyPercentage: scenario.DirtyPercentage,
		MaxTime:         scenario.MaxTime,
	}, rng.New(seed))
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	summary, err := simulation.Run(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	return Result{
		Scenario: scenario,
		Seed:     seed,
		Summary:  summary,
		History:  simulation.Metrics(),
	}, nil
}
