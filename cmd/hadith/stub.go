package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/metrics"
	"github.com/kailas-cloud/hadithview/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/hadithview/internal/transport/chi"
	"github.com/kailas-cloud/hadithview/internal/version"
)

func newStubCmd(a *app) *cobra.Command {
	var (
		port     int
		fixtures string
	)
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a fixture catalog over the backend API for offline use",
		Long: `stub serves the YAML fixture catalog over the same HTTP contract as the
real backend, so every command can run without network access:

  hadith stub &
  hadith --base-url http://localhost:8000/api/v1 search prayer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Stub
			if port != 0 {
				cfg.Port = port
			}
			if fixtures != "" {
				cfg.Fixtures = fixtures
			}
			return runStub(cmd.Context(), cfg.Port, cfg.Fixtures, a, cfg.APIKeys)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default: stub.port)")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "fixture catalog file (default: stub.fixtures)")
	return cmd
}

func runStub(ctx context.Context, port int, fixtures string, a *app, apiKeys []string) error {
	logger := a.logger
	stub := a.cfg.Stub

	cat, err := catalog.Load(fixtures)
	if err != nil {
		return err
	}
	handler, total, err := stubHandler(ctx, cat, logger, apiKeys)
	if err != nil {
		return err
	}

	logger.Info("Starting hadith stub backend",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", port),
		zap.String("fixtures", fixtures),
		zap.Int("hadiths", total),
		zap.Bool("auth", len(apiKeys) > 0),
	)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(stub.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(stub.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(stub.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// stubHandler builds the stub router over cat and publishes the catalog size.
// Requests get an id and a log line first, so a recovered panic is still logged.
func stubHandler(
	ctx context.Context, cat chiTransport.Catalog, logger *zap.Logger, apiKeys []string,
) (http.Handler, int, error) {
	total, err := cat.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count fixture hadiths: %w", err)
	}
	metrics.CatalogHadiths.Set(float64(total))

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLogger(logger))
	r.Use(chiTransport.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(chiTransport.BearerAuthMiddleware(apiKeys))
	chiTransport.NewServer(cat, logger).Mount(r)
	return r, total, nil
}
