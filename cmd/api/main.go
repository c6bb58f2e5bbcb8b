package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/avelune/storefront/internal/catalog"
	"github.com/avelune/storefront/internal/config"
	"github.com/avelune/storefront/internal/handler"
	"github.com/avelune/storefront/internal/middleware"
	"github.com/avelune/storefront/internal/storage"
	"github.com/avelune/storefront/internal/store"
	"github.com/avelune/storefront/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (optional: storage backend and catalog cache)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("connect to Redis", "error", err)
			os.Exit(1)
		}
		log.Info("connected to Redis")
	}

	// Storage backend
	var backend storage.Backend
	switch cfg.Storage.Backend {
	case "file":
		backend, err = storage.NewFileBackend(cfg.Storage.Dir)
		if err != nil {
			log.Error("open file storage", "error", err)
			os.Exit(1)
		}
	case "redis":
		backend = storage.NewRedisBackend(redisClient)
	case "memory":
		backend = storage.NewMemoryBackend()
	}
	log.Info("storage backend ready", "backend", cfg.Storage.Backend)

	// RabbitMQ (optional: fulfillment queue)
	var (
		amqpConn *amqp.Connection
		amqpCh   *amqp.Channel
	)
	if cfg.Broker.URL != "" {
		amqpConn, err = amqp.Dial(cfg.Broker.URL)
		if err != nil {
			log.Error("connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer amqpConn.Close()

		amqpCh, err = amqpConn.Channel()
		if err != nil {
			log.Error("open RabbitMQ channel", "error", err)
			os.Exit(1)
		}
		defer amqpCh.Close()

		if err := worker.SetupBroker(amqpCh); err != nil {
			log.Error("setup RabbitMQ", "error", err)
			os.Exit(1)
		}
		log.Info("connected to RabbitMQ")
	}

	// Store and collaborators
	st := store.New(ctx, backend, log.With("component", "store"))
	defer st.Close()
	<-st.Ready()

	catalogClient := catalog.NewClient(
		cfg.Catalog.BaseURL, cfg.Catalog.Timeout, cfg.Catalog.CacheTTL,
		redisClient, log.With("component", "catalog"),
	)
	publisher := worker.NewPublisher(amqpCh)

	// Handlers
	productH := handler.NewProductHandler(catalogClient)
	cartH := handler.NewCartHandler(st)
	wishlistH := handler.NewWishlistHandler(st)
	orderH := handler.NewOrderHandler(st, publisher)
	sessionH := handler.NewSessionHandler()
	healthH := handler.NewHealthHandler(backend, redisClient, amqpConn)

	// Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.Identity(cfg.Identity.JWTSecret))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/session", sessionH.Session)

		products := v1.Group("/products")
		products.GET("", productH.List)
		products.GET("/categories", productH.ListCategories)
		products.GET("/:id", productH.GetByID)

		cart := v1.Group("/cart")
		cart.GET("", cartH.GetCart)
		cart.DELETE("", cartH.Clear)
		cart.POST("/items", cartH.AddItem)
		cart.POST("/items/:id/increase", cartH.IncreaseQuantity)
		cart.POST("/items/:id/decrease", cartH.DecreaseQuantity)
		cart.DELETE("/items/:id", cartH.DeleteItem)
		cart.POST("/coupon", cartH.ApplyCoupon)

		wishlist := v1.Group("/wishlist")
		wishlist.GET("", wishlistH.GetWishlist)
		wishlist.POST("/items", wishlistH.AddItem)
		wishlist.DELETE("/items/:id", wishlistH.DeleteItem)
		wishlist.POST("/items/:id/move-to-cart", wishlistH.MoveToCart)

		orders := v1.Group("/orders")
		orders.POST("", orderH.CreateOrder)
		orders.GET("", orderH.ListOrders)
		orders.GET("/:id", orderH.GetOrder)
		orders.PATCH("/:id/status", orderH.UpdateStatus)
	}

	// Worker
	var fulfillment *worker.FulfillmentWorker
	if amqpCh != nil {
		fulfillment = worker.NewFulfillmentWorker(amqpCh, st, redisClient, log.With("component", "fulfillment"))
		if err := fulfillment.Start(ctx); err != nil {
			log.Error("start fulfillment worker", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	if fulfillment != nil {
		fulfillment.Stop()
	}
	st.Flush()
	cancel()
	log.Info("server stopped")
}
