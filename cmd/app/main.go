package main

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

	"printflow/cmd"
	httpadapter "printflow/internal/adapters/in/http"
	"printflow/internal/adapters/out/postgres"
	"printflow/internal/jobs"
	"printflow/internal/platform/observability"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	telemetry, shutdownTelemetry, err := observability.Init(ctx, observability.Config{
		ServiceName:  configs.OTelServiceName,
		Environment:  configs.OTelEnvironment,
		OTLPEndpoint: configs.OTLPEndpoint,
		OTLPInsecure: configs.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	logger := telemetry.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	gormDB, err := postgres.Connect(ctx, configs.DSN())
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	documents, images, err := cmd.NewStorages(ctx, configs, telemetry, logger)
	if err != nil {
		log.Fatalf("failed to configure file storage: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, documents, images, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	cleanupJobs, err := app.CreateCleanupJobs()
	if err != nil {
		log.Fatalf("failed to build cleanup jobs: %v", err)
	}
	jobManager := jobs.NewJobManager(cleanupJobs...)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start cleanup jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := httpadapter.NewEcho(app.CreateHTTPServer())

	go func() {
		logger.Info("http server listening", slog.String("port", port))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server exited", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}
}
