// Package server wires the friendgraph components together and runs the
// TCP endpoint with its health and metrics side listeners.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/friendgraph/internal/cryptox"
	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/dmitrijs2005/friendgraph/internal/server/config"
	"github.com/dmitrijs2005/friendgraph/internal/server/graph"
	"github.com/dmitrijs2005/friendgraph/internal/server/health"
	"github.com/dmitrijs2005/friendgraph/internal/server/metrics"
	"github.com/dmitrijs2005/friendgraph/internal/server/pathfinder"
	"github.com/dmitrijs2005/friendgraph/internal/server/router"
	"github.com/dmitrijs2005/friendgraph/internal/server/stats"
	"github.com/dmitrijs2005/friendgraph/internal/server/storage"
	"github.com/dmitrijs2005/friendgraph/internal/server/tcp"
	"github.com/dmitrijs2005/friendgraph/internal/server/users"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend storage.Backend
	tcp     *tcp.Server
	health  *health.Server
	metrics *metrics.Metrics
}

// NewApp opens storage and builds every component once.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	backend, err := storage.Open(ctx, c.StorageOptions(), logger.With("module", "storage"))
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	g, err := graph.NewStore(ctx, backend)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("graph init error: %w", err)
	}

	sealer, err := cryptox.NewSealerFromSecret(c.Secret)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("sealer init error: %w", err)
	}

	dir := users.NewDirectory(backend)
	m := metrics.New(g)

	r := router.New(router.Deps{
		Users:    dir,
		Auth:     users.NewAuthService(dir, cryptox.NewPasswordHasher(c.BcryptCost)),
		Graph:    g,
		Paths:    pathfinder.New(g),
		Stats:    stats.New(g),
		Opener:   sealer,
		Logger:   logger,
		Observer: m,
	})

	app := &App{
		config:  c,
		logger:  logger,
		backend: backend,
		tcp:     tcp.NewServer(c.ListenAddr, c.MaxFrameSize, r, logger, m),
		metrics: m,
	}
	if c.HealthAddr != "" {
		app.health = health.NewServer(c.HealthAddr, logger)
	}
	return app, nil
}

// Ready is closed once the TCP server accepts clients.
func (app *App) Ready() <-chan struct{} {
	return app.tcp.Ready()
}

// Addr is the TCP listener address, valid after Ready.
func (app *App) Addr() net.Addr {
	return app.tcp.Addr()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is canceled, a signal arrives or a listener fails.
// Storage is closed on the way out.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.tcp.Run(gctx) })

	if app.health != nil {
		g.Go(func() error { return app.health.Run(gctx) })
		g.Go(func() error {
			select {
			case <-app.tcp.Ready():
				app.health.SetServing(true)
			case <-gctx.Done():
			}
			return nil
		})
	}

	if app.config.MetricsAddr != "" {
		ms := metrics.NewServer(app.config.MetricsAddr, app.metrics, app.logger)
		g.Go(func() error { return ms.Run(gctx) })
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-gctx.Done():
		app.logger.Info(ctx, "Shutting down...")
		if app.health != nil {
			app.health.SetServing(false)
		}
		select {
		case err = <-done:
		case <-time.After(app.config.ShutdownTimeout):
			err = errors.New("shutdown timed out")
		}
	}

	if cerr := app.backend.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close storage: %w", cerr))
	}
	if err != nil {
		app.logger.Error(ctx, "app stopped with error", "error", err)
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}
