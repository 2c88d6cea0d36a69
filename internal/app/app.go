package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/cleangrid/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW, through a logger owned by this App.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}
