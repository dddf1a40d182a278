package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/coursekit/coursegraph/internal/ctxlog"
	"github.com/coursekit/coursegraph/internal/siteconfig"
)

// App encapsulates the build tool's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	siteCfg *siteconfig.Config
}

// NewApp is the constructor for the application. It returns a fully
// initialized App with its own isolated logger and a resolved site
// configuration.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	siteCfg := siteconfig.Default()
	if appConfig.ConfigPath != "" {
		loaded, err := siteconfig.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			// A failure to load configuration is a fatal startup error.
			panic(fmt.Errorf("failed to load site configuration: %w", err))
		}
		siteCfg = loaded
	}

	// CLI settings override the site file.
	if appConfig.ContentPath != "" {
		siteCfg.ContentRoot = appConfig.ContentPath
	}
	if appConfig.Strict {
		siteCfg.Strict = true
	}
	logger.Debug("Site configuration resolved.",
		"content_root", siteCfg.ContentRoot, "strict", siteCfg.Strict)

	return &App{
		outW:    outW,
		logger:  logger,
		siteCfg: siteCfg,
	}
}

// SiteConfig returns the resolved site configuration. Primarily for testing.
func (a *App) SiteConfig() *siteconfig.Config {
	return a.siteCfg
}
