package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/executor"
	"github.com/specialistvlad/uiprobe/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	config     *Config
	loader     config.Loader
	registry   *registry.Registry
	metrics    *metrics
	httpServer *http.Server

	poolMu sync.RWMutex
	pool   *executor.Pool
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. When modules is empty the core drivers are registered.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules(cfg)
	}
	reg := registry.NewWithModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "drivers", reg.DriverNames())

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		loader:   loader,
		registry: reg,
		metrics:  newMetrics(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) setPool(p *executor.Pool) {
	a.poolMu.Lock()
	defer a.poolMu.Unlock()
	a.pool = p
}

func (a *App) currentPool() *executor.Pool {
	a.poolMu.RLock()
	defer a.poolMu.RUnlock()
	return a.pool
}
