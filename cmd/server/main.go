package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/pocketledger/internal/adapter/http"
	"github.com/iho/pocketledger/internal/adapter/http/handler"
	"github.com/iho/pocketledger/internal/adapter/repository"
	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/infrastructure/backend"
	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/logger"
	"github.com/iho/pocketledger/internal/infrastructure/metrics"
	"github.com/iho/pocketledger/internal/usecase"
)

func main() {
	// Load configuration, reading $ENV_FILE or ./.env when present
	cfg, err := config.Load(config.DotenvFiles("")...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open storage backend
	b, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open storage backend")
	}
	defer b.Close()

	router, err := buildRouter(ctx, cfg, b, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	server := newServer(cfg, router)

	if err := serve(ctx, server, cfg.HTTPShutdownTimeout); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

// buildRouter wires the ledger use case and handlers onto backend b.
func buildRouter(ctx context.Context, cfg *config.Config, b *backend.Backend, logger zerolog.Logger) (http.Handler, error) {
	idGen := repository.NewIDGenerator(cfg.IDScheme)
	store := repository.NewSlotStore(b.Slot, cfg.StorageKey, idGen, logger)
	formatter := domain.NewMoneyFormatter(cfg.CurrencySymbol, domain.Grouping(cfg.DigitGrouping))

	routerCfg := httpAdapter.RouterConfig{
		HealthHandler: handler.NewHealthHandler(b.Name, b),
		Logger:        logger,
	}

	var opts []usecase.Option
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		m := metrics.New(registry)
		opts = append(opts, usecase.WithObserver(m))
		routerCfg.Metrics = m
		routerCfg.Gatherer = registry
	}

	ledger := usecase.NewLedgerUseCase(ctx, store, idGen, opts...)
	log.Info().Int("entries", len(ledger.All())).Str("backend", b.Name).Msg("ledger loaded")

	page, err := handler.NewPageHandler(ledger, formatter, logger)
	if err != nil {
		return nil, err
	}
	routerCfg.PageHandler = page
	routerCfg.APIHandler = handler.NewAPIHandler(ledger, formatter)

	return httpAdapter.NewRouter(routerCfg), nil
}

func newServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
