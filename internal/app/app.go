package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/pbxproj/internal/config"
	"github.com/vk/pbxproj/internal/ctxlog"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *config.Config
}

// NewApp returns an App writing results to outW and logs to logW. Each App
// has its own logger.
func NewApp(outW, logW io.Writer, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return &App{outW: outW, logger: logger, cfg: cfg}
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Out is where command results are written.
func (a *App) Out() io.Writer {
	return a.outW
}

// context attaches the App's logger to ctx.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
