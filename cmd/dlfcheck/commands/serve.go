package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kitodo/dlfcheck/internal/httpapi"
	"github.com/kitodo/dlfcheck/internal/logger"
	"github.com/kitodo/dlfcheck/internal/metrics"
	"github.com/kitodo/dlfcheck/internal/repository"
	"github.com/kitodo/dlfcheck/internal/service/checker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	PersistenceFlags
	Addr string
}

var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Run the HTTP API",
	GroupID:       "records",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Serve the check API over HTTP until interrupted.

Endpoints:
  POST /v1/identifiers/check   {"type": "ppn", "id": "048772607"}
  POST /v1/urn                 {"base": "urn:nbn:de:gbv:089-", "id": "332175294"}
  GET  /v1/urn/verify?urn=...
  GET  /v1/records?kind=&input=&valid=&sort=
  GET  /healthz
  GET  /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := cfg.Server.Addr
		if serveFlags.Addr != "" {
			addr = serveFlags.Addr
		}

		log := logger.WithService(slog.Default(), "httpapi")

		repo, err := repository.NewRepository(ctx, serveFlags.repositoryConfig())
		if err != nil {
			return err
		}
		svc := checker.NewService(repo, checker.Options{
			CacheTTL:     cfg.Cache.TTL.Duration,
			CacheCleanup: cfg.Cache.Cleanup.Duration,
			Namespace:    cfg.URN.Namespace,
			Metrics:      metrics.New(prometheus.DefaultRegisterer),
			Logger:       log,
		})

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewRouter(svc, log, prometheus.DefaultGatherer),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("Listening", slog.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	addPersistenceFlags(serveCmd, &serveFlags.PersistenceFlags)
	serveCmd.Flags().StringVarP(&serveFlags.Addr, "addr", "a", "", "Listen address (default from configuration, :8080)")
}
