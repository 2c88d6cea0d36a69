package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/cleangrid/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // hcl file or directory; empty means the inline scenario
	ScenarioName string // run only this scenario

	// Inline scenario, used when ScenarioPath is empty.
	Width           int
	Height          int
	Agents          int
	DirtyPercentage float64
	MaxTime         int

	Seed         int64 // 0 means time based
	HistoryPath  string
	ReportFormat string // text or json

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns a Config running the default inline scenario.
func DefaultConfig() Config {
	return Config{
		Width:           config.DefaultWidth,
		Height:          config.DefaultHeight,
		Agents:          config.DefaultAgents,
		DirtyPercentage: config.DefaultDirtyPercentage,
		MaxTime:         config.DefaultMaxTime,
		ReportFormat:    "text",
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

// NewConfig validates cfg and returns a pointer to a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.ReportFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid report format %q: must be 'text' or 'json'", cfg.ReportFormat)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.ScenarioPath == "" {
		if cfg.ScenarioName != "" {
			return nil, errors.New("a scenario name requires a scenario path")
		}
		if err := cfg.inlineScenario().Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// inlineScenarioName names the scenario built from flags.
const inlineScenarioName = "inline"

func (c *Config) inlineScenario() *config.Scenario {
	s := &config.Scenario{
		Name:            inlineScenarioName,
		Width:           c.Width,
		Height:          c.Height,
		Agents:          c.Agents,
		DirtyPercentage: c.DirtyPercentage,
		MaxTime:         c.MaxTime,
		Source:          "flags",
	}
	if c.Seed != 0 {
		seed := c.Seed
		s.Seed = &seed
	}
	return s
}
