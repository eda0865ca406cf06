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

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/migrations"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "fulfillment",
		Short:         "Warehouse order allocation, picking and replenishment service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCommand(&envFile),
		newMigrateCommand(&envFile),
	)
	return root
}

func newServeCommand(envFile *string) *cobra.Command {
	var migrate bool

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the backlog reports",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			logger := cmd.NewLogger(configs, os.Stdout)

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err = migrations.Up(ctx, configs.DSN()); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			gormDB, err := openDatabase(configs)
			if err != nil {
				return err
			}

			app, err := cmd.NewCompositionRoot(configs, gormDB)
			if err != nil {
				return err
			}
			return run(ctx, &app, configs, logger)
		},
	}
	serve.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return serve
}

func newMigrateCommand(envFile *string) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(c *cobra.Command, _ []string) error {
				configs, err := cmd.LoadConfig(*envFile)
				if err != nil {
					return err
				}
				return migrations.Up(c.Context(), configs.DSN())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(c *cobra.Command, _ []string) error {
				configs, err := cmd.LoadConfig(*envFile)
				if err != nil {
					return err
				}
				return migrations.Down(c.Context(), configs.DSN())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(c *cobra.Command, _ []string) error {
				configs, err := cmd.LoadConfig(*envFile)
				if err != nil {
					return err
				}
				version, err := migrations.Version(c.Context(), configs.DSN())
				if err != nil {
					return err
				}
				c.Println(version)
				return nil
			},
		},
	)
	return migrate
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if configs.IsProduction() {
		level = gormlogger.Error
	}

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return gormDB, nil
}

func run(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	e, err := httpin.NewEcho(httpin.NewServer(app.CreateHTTPHandlers(), logger), app.Metrics(), logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
