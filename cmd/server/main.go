package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/logging"
	"github.com/yukikurage/project-management-api/internal/metrics"
	"github.com/yukikurage/project-management-api/internal/server"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a YAML config file (environment variables take precedence)",
	}

	app := &cli.Command{
		Name:    "project-management-api",
		Usage:   "Multi-tenant project and task management REST API",
		Version: version,
		Flags:   []cli.Flag{configFlag},
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema and exit",
				Flags:  []cli.Flag{configFlag},
				Action: migrate,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal("command failed", "error", err)
	}
}

// bootstrap loads configuration, builds the logger and opens a migrated database.
func bootstrap(cmd *cli.Command) (*config.Config, *log.Logger, *gorm.DB, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)
	log.SetDefault(logger)

	db, err := database.Connect(cfg.Database, logging.GormLevel(cfg.Log.Level))
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, nil, err
	}
	if err := database.EnsureIndexes(db); err != nil {
		return nil, nil, nil, err
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	return cfg, logger, db, nil
}

func migrate(_ context.Context, cmd *cli.Command) error {
	_, logger, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeDB(logger, db)

	logger.Info("migrations applied")
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeDB(logger, db)

	gin.SetMode(cfg.Server.GinMode)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	router, err := server.NewRouter(server.Options{
		DB:      db,
		Auth:    cfg.Auth,
		Logger:  logger,
		Metrics: m,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func closeDB(logger *log.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}
