// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/primordial-software/content-inventory-go/internal/application/container"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/logging"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/observability/performance"
	"github.com/primordial-software/content-inventory-go/internal/infrastructure/persistence/database"
	"github.com/primordial-software/content-inventory-go/internal/presentation/http/routes"
	"github.com/primordial-software/content-inventory-go/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until shutdown
func Initialize() error {
	log.Println("Initializing content inventory service...")

	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.LogDirectory = config.LogDirectory
	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Startup().Info("Channeled logging initialized", "directory", config.LogDirectory)

	if config.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be configured")
	}
	if config.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be configured")
	}

	// Connect to the content store. A configured Turso URL takes precedence
	// over the local sqlite file.
	driverName := config.DBDriver
	dataSourceName := config.DBPath
	if config.TursoDatabaseURL != "" {
		driverName = "libsql"
		dataSourceName = fmt.Sprintf("%s?authToken=%s", config.TursoDatabaseURL, config.TursoAuthToken)
	}

	logger.Startup().Info("Connecting to content store", "driver", driverName)
	db, err := database.NewConnectionWithLogger(driverName, dataSourceName, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to content store: %w", err)
	}
	defer db.Close()

	logger.Startup().Info("Bootstrapping content-store schema")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tableCreator.SeedRegistries(db.DB); err != nil {
		return fmt.Errorf("failed to seed registries: %w", err)
	}

	logger.Startup().Info("Initializing dependency injection container")
	perfTracker := performance.NewTracker()
	appContainer := container.NewContainer(db, logger, perfTracker)

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Startup().Info("HTTP server listening", "port", config.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Shutdown().Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Shutdown().Info("Server stopped cleanly")
	return nil
}
