// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/domain/cart"
	"github.com/your-org/pharmacy-storefront/internal/domain/checkout"
	"github.com/your-org/pharmacy-storefront/internal/gateway"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage/memory"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage/postgres"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage/redis"
	httpserver "github.com/your-org/pharmacy-storefront/internal/interfaces/http"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	logger.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"cart_store":  cfg.Storage.Backend,
	}).Info("starting storefront")

	// Durable cart store. Redis also powers rate limiting when present.
	var cartStore storage.Store
	var redisClient *goredis.Client

	switch cfg.Storage.Backend {
	case "redis":
		redisClient, err = redis.NewConnection(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cartStore = redis.NewStore(redisClient, cfg.Storage.CartTTL)
	case "postgres":
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		cartStore = postgres.NewStore(db)
	default:
		cartStore = memory.NewStore()
		logger.Warn("using in-memory cart store, carts will not survive restarts")
	}

	// Backend gateways.
	client := gateway.NewClient(cfg.Backend, logger)
	products := gateway.NewProductGateway(client)
	orders := gateway.NewOrderGateway(client)
	auth := gateway.NewAuthGateway(client)
	messages := gateway.NewMessageGateway(client)

	// Domain services.
	carts := cart.NewManager(cartStore, logger)
	reconciler := cart.NewReconciler(products, logger)
	checkoutService := checkout.NewService(orders, cfg.Checkout, logger)

	server := httpserver.NewServer(routes.Deps{
		Config:     cfg,
		Logger:     logger,
		CartStore:  cartStore,
		Carts:      carts,
		Reconciler: reconciler,
		Checkout:   checkoutService,
		Products:   products,
		Orders:     orders,
		Auth:       auth,
		Messages:   messages,
	}, redisClient)

	// Evict per-session state that has gone idle so the maps do not
	// grow one entry per device forever.
	sweeper := time.NewTicker(5 * time.Minute)
	defer sweeper.Stop()
	go func() {
		for range sweeper.C {
			carts.Sweep(cfg.Storage.IdleTimeout)
			checkoutService.Sweep(cfg.Storage.IdleTimeout)
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}
}
