package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"restaurant/api"
	"restaurant/config"
	"restaurant/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	router  *api.Router
	server  *http.Server
	closers []closer
}

// Handler is the HTTP handler, for tests.
func (a *App) Handler() http.Handler {
	return a.router.GetEngine()
}

// Run serves until ctx is cancelled or the listener fails, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	err := g.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	a.Shutdown(closeCtx)
	return err
}

// Shutdown releases storage, brokers and the tracer, in reverse order of creation.
func (a *App) Shutdown(ctx context.Context) {
	closeAll(ctx, a.closers)
	a.closers = nil
	_ = logger.Sync()
}

func closeAll(ctx context.Context, closers []closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].fn(ctx); err != nil {
			logger.Warn("Failed to close component", zap.String("component", closers[i].name), zap.Error(err))
		}
	}
}
