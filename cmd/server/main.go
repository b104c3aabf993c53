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

	"github.com/ikkim/grocery-cart/config"
	"github.com/ikkim/grocery-cart/internal/app/controller"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/internal/app/service"
	"github.com/ikkim/grocery-cart/internal/db"
	"github.com/ikkim/grocery-cart/internal/router"
	"github.com/ikkim/grocery-cart/internal/scheduler"
	"github.com/ikkim/grocery-cart/internal/storage"
	ws "github.com/ikkim/grocery-cart/internal/websocket"
	"github.com/ikkim/grocery-cart/pkg/logger"
	"github.com/ikkim/grocery-cart/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format != "json",
	})

	logger.Info("Starting grocery cart server", map[string]interface{}{
		"environment":     cfg.Server.Environment,
		"port":            cfg.Server.Port,
		"log_level":       logLevel,
		"storage_backend": cfg.Cart.StorageBackend,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the default catalog
	if err := db.Migrate(db.GetDB()); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx := context.Background()

	// Snapshot store
	blobs := storage.OpenOrDegrade(ctx, cfg, db.GetDB())
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()
	snapshotRepo := repository.NewCartSnapshotRepository(blobs, cfg.Cart.StorageKey)
	writer := service.NewSnapshotWriter(snapshotRepo)

	// Cart feed
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	productRepo := repository.NewProductRepository(db.GetDB())
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(
		productService,
		snapshotRepo,
		writer,
		service.NewPricingRules(cfg.Cart),
		hub,
	)
	cartService.Restore(ctx)

	checkpoints := scheduler.NewCheckpointScheduler(cartService, cfg.Cart.CheckpointSchedule)
	if err := checkpoints.Start(); err != nil {
		logger.Warn("Cart checkpoints disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize controllers
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService, hub, cfg.CORS.AllowedOrigins)

	// Setup router
	r := router.NewRouter(productController, cartController, cfg)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	checkpoints.Stop()
	hub.Stop()
	// flush the last cart snapshot before the stores close
	writer.Close()

	logger.Info("Server stopped successfully")
}
