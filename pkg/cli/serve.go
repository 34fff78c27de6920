package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/cli/config"
	controller "github.com/secmon-lab/kevtrend/pkg/controller/http"
	"github.com/secmon-lab/kevtrend/pkg/repository"
	"github.com/secmon-lab/kevtrend/pkg/usecase"
	"github.com/secmon-lab/kevtrend/pkg/utils/apperr"
	"github.com/secmon-lab/kevtrend/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		catalogCfg config.Catalog
		viewsCfg   config.Views
	)

	flags := joinFlags(
		serverCfg.Flags(),
		catalogCfg.Flags(),
		viewsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting kevtrend server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("catalog", catalogCfg),
			)

			views, err := viewsCfg.Configure()
			if err != nil {
				return err
			}

			source := catalogCfg.Configure()
			repo := repository.NewMemory()
			datasetUC := usecase.NewDataset(repo, source, views)

			// Initial load before accepting queries
			if err := datasetUC.Refresh(ctx); err != nil {
				return goerr.Wrap(err, "failed to load initial catalog")
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, datasetUC)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			if catalogCfg.RefreshInterval > 0 {
				startRefreshLoop(ctx, datasetUC, catalogCfg.RefreshInterval)
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// startRefreshLoop re-fetches the catalog on a fixed interval. A failed
// refresh keeps the current snapshot and retries on the next tick.
func startRefreshLoop(ctx context.Context, datasetUC *usecase.DatasetUseCase, interval time.Duration) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := datasetUC.Refresh(ctx); err != nil {
				apperr.Handle(ctx, err)
			}
		}
		return nil
	})
}
