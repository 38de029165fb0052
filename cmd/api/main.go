package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/uwezo/shop-backend/internal/config"
	"github.com/uwezo/shop-backend/internal/handler"
	"github.com/uwezo/shop-backend/internal/middleware"
	"github.com/uwezo/shop-backend/internal/repository"
	"github.com/uwezo/shop-backend/internal/service"
	"github.com/uwezo/shop-backend/internal/session"
	"github.com/uwezo/shop-backend/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
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

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	wishlistRepo := repository.NewWishlistRepository(dbPool)
	cartRepo := repository.NewCartRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	statsRepo := repository.NewStatsRepository(dbPool)

	// Sessions
	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)

	// Services
	authSvc := service.NewAuthService(userRepo)
	productSvc := service.NewProductService(productRepo, redisClient)
	wishlistSvc := service.NewWishlistService(wishlistRepo, productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, amqpCh)
	adminSvc := service.NewAdminService(statsRepo, userRepo, orderRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc, sessions, cfg, log)
	productH := handler.NewProductHandler(productSvc, log)
	wishlistH := handler.NewWishlistHandler(wishlistSvc, log)
	cartH := handler.NewCartHandler(cartSvc, log)
	orderH := handler.NewOrderHandler(orderSvc, log)
	adminH := handler.NewAdminHandler(adminSvc, log)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn)

	// Worker
	confirmWorker := worker.NewConfirmWorker(amqpCh, orderRepo, userRepo, redisClient, log)

	// Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	// Public routes.
	rateLimited := middleware.RateLimit(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	router.POST("/register", rateLimited, authH.Register)
	router.POST("/login", rateLimited, authH.Login)
	router.POST("/logout", authH.Logout)
	router.GET("/products", productH.List)
	router.GET("/products/:id", productH.GetByID)
	router.GET("/products/category/:category", productH.ListByCategory)

	// Routes for any authenticated user.
	authed := router.Group("",
		middleware.RequireSession(sessions, cfg.Session.CookieName),
		middleware.RequireCSRF(cfg.Session.Secret),
	)
	authed.GET("/csrf-token", authH.CSRFToken)
	authed.GET("/profile", authH.Profile)

	authed.GET("/wishlist", wishlistH.List)
	authed.POST("/wishlist", wishlistH.Add)
	authed.DELETE("/wishlist/:product_id", wishlistH.Remove)

	authed.GET("/cart", cartH.List)
	authed.POST("/cart", cartH.Add)
	authed.PUT("/cart", cartH.SetQuantity)
	authed.DELETE("/cart/:product_id", cartH.Remove)

	authed.POST("/orders", orderH.Create)
	authed.GET("/orders", orderH.List)
	authed.GET("/orders/:id", orderH.GetByID)

	// Admin-only routes.
	admin := authed.Group("/admin", middleware.AdminOnly())
	admin.GET("/dashboard", adminH.Dashboard)
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/orders", adminH.ListOrders)
	admin.POST("/products", productH.Create)
	admin.PUT("/products/:id", productH.Update)
	admin.DELETE("/products/:id", productH.Delete)

	if err := confirmWorker.Start(ctx); err != nil {
		log.Error("start confirmation worker", "error", err)
		os.Exit(1)
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

	confirmWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
