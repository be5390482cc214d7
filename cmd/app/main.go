// Command app runs the cleaner dispatch service.
//
// Subcommands:
//
//	serve    apply migrations, then run the HTTP API and background jobs
//	migrate  apply pending database migrations and exit
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

	_ "github.com/KimMachineGun/automemlimit"

	"dispatch/api"
	"dispatch/cmd"
	"dispatch/internal/adapters/out/amqp"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/logging"
	"dispatch/internal/pkg/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "dispatch",
		Short:         "Cleaner dispatch service",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and run the HTTP API with the background jobs",
		RunE:  runServe,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			version, err := postgres.Migrate(cfg.DSN())
			if err != nil {
				return err
			}
			logger.Info("Migrations applied", "version", version)
			return nil
		},
	}
}

func setup() (cmd.Config, *slog.Logger, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return cmd.Config{}, nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout).
		With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	doc, err := api.Load(ctx)
	if err != nil {
		return err
	}
	openAPI, err := api.JSON(doc)
	if err != nil {
		return err
	}
	api.Register(openAPI)

	shutdownTracing, err := tracing.Init(cfg.TracingEnabled, cfg.ServiceName, cfg.ServiceVersion, os.Stdout)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	version, err := postgres.Migrate(cfg.DSN())
	if err != nil {
		return err
	}
	logger.Info("Schema is up to date", "version", version)

	db, err := postgres.Open(ctx, cfg.DSN(), postgres.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		LogLevel:     cmd.GormLogLevel(cfg.DBLogLevel),
	})
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		_ = postgres.Close(db)
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	release := func() error {
		return errors.Join(closePublisher(), postgres.Close(db))
	}

	app, err := cmd.NewCompositionRoot(cfg, db, publisher, registry, logger)
	if err != nil {
		return errors.Join(err, release())
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return errors.Join(err, release())
	}

	e := app.CreateRouter(openAPI)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "addr", cfg.HTTPAddr())
		if err := e.Start(cfg.HTTPAddr()); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case srvErr := <-serverErr:
		if srvErr != nil {
			err = fmt.Errorf("http server: %w", srvErr)
		}
	case <-ctx.Done():
		stop()
	}

	logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	shutdownErrs := []error{err, e.Shutdown(shutdownCtx)}
	jobManager.StopAll()
	shutdownErrs = append(shutdownErrs, release(), shutdownTracing(shutdownCtx))

	logger.Info("Stopped")
	return errors.Join(shutdownErrs...)
}

func newPublisher(cfg cmd.Config, logger *slog.Logger) (ports.EventPublisher, func() error, error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL is empty, job events go to the log")
		return amqp.NewLogPublisher(logger), func() error { return nil }, nil
	}

	publisher, err := amqp.Dial(cfg.AMQPURL, cfg.AMQPExchange, amqp.Options{}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp: %w", err)
	}
	return publisher, publisher.Close, nil
}
