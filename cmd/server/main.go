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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kagretirement/registry/api/internal/config"
	"github.com/kagretirement/registry/api/internal/database"
	"github.com/kagretirement/registry/api/internal/handlers"
	"github.com/kagretirement/registry/api/internal/logger"
	"github.com/kagretirement/registry/api/internal/middleware"
	"github.com/kagretirement/registry/api/internal/repository"
	"github.com/kagretirement/registry/api/internal/services"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// CLI flags
var (
	envFiles []string
	port     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "registry",
		Short:        "KAG pastoral registry API",
		Long:         `Serves the district, section and pastor registry over HTTP.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringArrayVar(&envFiles, "env-file", nil, "Load variables from this .env file (repeatable, defaults to ./.env when present)")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (overrides PORT)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("registry %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewWithConfig(cfg.Server.Env, cfg.Log)
	log.Info("Starting registry API", map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"log_file":    cfg.Log.File,
	})

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", err, map[string]interface{}{
			"pool_min": cfg.Database.PoolMin,
			"pool_max": cfg.Database.PoolMax,
		})
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Error("Failed to prepare database schema", err, nil)
		return err
	}

	log.Info("Database connection established", map[string]interface{}{
		"backend":  db.Dialect.String(),
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.GetZerolog()
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	healthHandler := handlers.NewHealthHandler(db, db.Dialect.String(), version, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	store := repository.NewStore(db)
	districtService := services.NewDistrictService(store, log)
	sectionService := services.NewSectionService(store, log)
	pastorService := services.NewPastorService(store, log, cfg.Pastor.CodeAttempts)

	handlers.RegisterRoutes(
		router.Group("/api/v1"),
		handlers.NewDistrictHandler(districtService),
		handlers.NewSectionHandler(sectionService),
		handlers.NewPastorHandler(pastorService),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM) or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			log.Error("Server failed to start", err, nil)
			return err
		}
	}

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
	return nil
}
