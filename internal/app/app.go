package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/hclsketch/internal/ctxlog"
	"github.com/specialistvlad/hclsketch/internal/script"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	loader *script.Loader
}

// NewApp is the constructor for the main application. Logs and script
// diagnostics go to errW; results go to outW.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		loader: script.NewLoader(errW),
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
