package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-loans-go/calendar"
	"github.com/AntonStoeckl/library-loans-go/circulation"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/config"
	"github.com/AntonStoeckl/library-loans-go/circulation/shell/httpapi"
	"github.com/AntonStoeckl/library-loans-go/loanstore"
	"github.com/AntonStoeckl/library-loans-go/loanstore/oteladapters"
	"github.com/AntonStoeckl/library-loans-go/loanstore/postgresengine"
)

const instrumentationName = "github.com/AntonStoeckl/library-loans-go"

func main() {
	if err := run(); err != nil {
		log.Fatalf("library-api: %v", err)
	}
}

//nolint:funlen
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability := observabilityOptions{}
	if cfg.Observability {
		providers, providersErr := config.NewObservabilityProviders(cfg.ServiceName)
		if providersErr != nil {
			return providersErr
		}

		defer func() {
			if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
				logger.Warn("observability shutdown failed", "error", shutdownErr.Error())
			}
		}()

		observability = newObservabilityOptions(cfg.ServiceName, logger)
	}

	backend, err := openBackend(ctx, cfg, logger, observability.storeOptions(logger)...)
	if err != nil {
		return err
	}
	defer backend.close()

	if cfg.CreateSchema {
		if schemaErr := backend.loanStore.CreateSchema(ctx); schemaErr != nil {
			return schemaErr
		}
	}

	policyOptions, err := cfg.DatePolicyOptions()
	if err != nil {
		return err
	}

	datePolicy, err := calendar.NewPolicy(calendar.SystemClock{}, policyOptions...)
	if err != nil {
		return err
	}

	engine, err := circulation.NewEngine(
		backend.loanStore,
		backend.users,
		backend.books,
		datePolicy,
		append(observability.engineOptions(logger), circulation.WithStoreTimeout(cfg.StoreTimeout))...,
	)
	if err != nil {
		return err
	}

	handler, err := httpapi.NewHandler(
		engine,
		httpapi.WithLoanDeleter(backend.loanStore, cfg.StoreTimeout),
		httpapi.WithHealthCheck(backend.ping),
		httpapi.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: cfg.StoreTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("library api listening", "addr", cfg.HTTPAddr, "db_adapter", cfg.DBAdapter)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("library api stopped")

	return nil
}

type observabilityOptions struct {
	contextualLogger loanstore.ContextualLogger
	metricsCollector *oteladapters.MetricsCollector
	tracingCollector *oteladapters.TracingCollector
}

func newObservabilityOptions(serviceName string, logger *slog.Logger) observabilityOptions {
	return observabilityOptions{
		contextualLogger: oteladapters.TeeLogger{logger, oteladapters.NewSlogBridgeLogger(serviceName)},
		metricsCollector: oteladapters.NewMetricsCollector(otel.Meter(instrumentationName)),
		tracingCollector: oteladapters.NewTracingCollector(otel.Tracer(instrumentationName)),
	}
}

func (o observabilityOptions) enabled() bool {
	return o.contextualLogger != nil
}

func (o observabilityOptions) storeOptions(logger *slog.Logger) []postgresengine.Option {
	if !o.enabled() {
		return []postgresengine.Option{postgresengine.WithLogger(logger)}
	}

	return []postgresengine.Option{
		postgresengine.WithContextualLogger(o.contextualLogger),
		postgresengine.WithMetrics(o.metricsCollector),
		postgresengine.WithTracing(o.tracingCollector),
	}
}

func (o observabilityOptions) engineOptions(logger *slog.Logger) []circulation.Option {
	if !o.enabled() {
		return []circulation.Option{circulation.WithLogger(logger)}
	}

	return []circulation.Option{
		circulation.WithContextualLogger(o.contextualLogger),
		circulation.WithMetrics(o.metricsCollector),
		circulation.WithTracing(o.tracingCollector),
	}
}
