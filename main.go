// @title        Portfolio Backend API
// @version      1.0
// @description  Contact form API for the portfolio site.
// @BasePath     /api
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

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/handlers"
	"github.com/devfolio/portfolio-backend/internal/store"
	"github.com/devfolio/portfolio-backend/internal/store/filestore"
	"github.com/devfolio/portfolio-backend/internal/store/postgres"
	"github.com/devfolio/portfolio-backend/internal/store/redisstore"
	"github.com/devfolio/portfolio-backend/internal/store/sqlite"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/router"
	"github.com/devfolio/portfolio-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// runs after every other deferred close
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// .env is optional
	_ = godotenv.Load()

	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := openContactStore(startupCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to open %s contact store: %v", cfg.Store.Driver, err)
	}
	contactStore := store.NewInstrumented(backend, cfg.Store.Driver, prometheus.DefaultRegisterer)
	defer func() {
		if err := contactStore.Close(); err != nil {
			log.Errorw("Failed to close contact store", "error", err)
		}
	}()

	notifier := services.NewEmailNotifier(&cfg.Email)
	contactService := services.NewContactService(contactStore, notifier)
	healthService := services.NewHealthService(contactStore, cfg.Store.Driver, notifier, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		ContactHandler: handlers.NewContactHandler(contactService),
		HealthHandler:  handlers.NewHealthHandler(healthService),
		SPAHandler:     handlers.NewSPAHandler(cfg.Server.StaticDir),
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("Server listening",
			"addr", srv.Addr,
			"environment", cfg.Server.Environment,
			"store_driver", cfg.Store.Driver,
			"email_notifications", notifier.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Infow("Shutting down server", "signal", sig.String())
	case err := <-serverErr:
		log.Errorw("Server error, shutting down", "error", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}
}

// openContactStore opens the backend selected by STORE_DRIVER.
func openContactStore(ctx context.Context, cfg *config.Config) (store.ContactStore, error) {
	switch cfg.Store.Driver {
	case config.DriverFile:
		return filestore.Open(cfg.Store.FilePath)
	case config.DriverPostgres:
		return postgres.Open(ctx, &cfg.Database)
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLite.Path)
	case config.DriverRedis:
		return redisstore.Open(ctx, config.RedisOptions(&cfg.Redis), cfg.Redis.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
