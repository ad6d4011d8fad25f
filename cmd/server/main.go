package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"loja-backend/internal/cache"
	"loja-backend/internal/config"
	"loja-backend/internal/database"
	"loja-backend/internal/handlers"
	"loja-backend/internal/logger"
	"loja-backend/internal/payment"
	"loja-backend/internal/repository"
	"loja-backend/internal/routes"
	"loja-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	logger.Setup(cfg.IsProd)
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logrus.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		logrus.Fatalf("failed to create indexes: %v", err)
	}

	// The product list cache is optional; without REDIS_ADDR every listing
	// goes to MongoDB.
	var productCache service.ProductCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		productCache = cache.NewRedis(rdb)
		logrus.WithField("addr", cfg.RedisAddr).Info("Redis connected")
	}

	users := repository.NewUserRepository(store)
	products := repository.NewProductRepository(store)
	carts := repository.NewCartRepository(store)
	orders := repository.NewOrderRepository(store)

	secret := []byte(cfg.JWTSecret)
	router := routes.SetupRouter(routes.Handlers{
		Users:    handlers.NewUserHandler(service.NewUserService(users, secret)),
		Products: handlers.NewProductHandler(service.NewCatalogService(products, productCache)),
		Carts:    handlers.NewCartHandler(service.NewCartService(carts, orders, products)),
		Orders:   handlers.NewOrderHandler(service.NewOrderService(orders)),
		Payments: handlers.NewPaymentHandler(service.NewPaymentService(carts, payment.NewStripe(cfg.StripeSecretKey))),
		Health:   handlers.NewHealthHandler(store),
	}, routes.Options{JWTSecret: secret, CORSOrigins: cfg.CORSOrigins})

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}
	logrus.Info("server stopped")
}
