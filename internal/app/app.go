// Package app assembles the portal's components and dependencies.
package app

import (
	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/handlers"
	"github.com/alphapie/pieview/internal/loader"
	"github.com/alphapie/pieview/internal/mcp"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger
	Loader *loader.Loader

	// HTTP handlers
	PageHandler        *handlers.PageHandler
	HealthHandler      *handlers.HealthHandler
	VersionHandler     *handlers.VersionHandler
	PerformanceHandler *handlers.PerformanceHandler
	ChartHandler       *handlers.ChartHandler
	MCPHandler         *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	a.Loader = loader.New(cfg, logger)
	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Loader)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.PerformanceHandler = handlers.NewPerformanceHandler(a.Logger, a.Loader)
	a.ChartHandler = handlers.NewChartHandler(a.Logger, a.Loader)
	a.MCPHandler = mcp.NewHandler(a.Loader, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
