package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rohitkandpal03/shopz-store/cache"
	"github.com/rohitkandpal03/shopz-store/config"
	"github.com/rohitkandpal03/shopz-store/controllers"
	"github.com/rohitkandpal03/shopz-store/database"
	"github.com/rohitkandpal03/shopz-store/events"
	"github.com/rohitkandpal03/shopz-store/logger"
	"github.com/rohitkandpal03/shopz-store/middleware"
	"github.com/rohitkandpal03/shopz-store/models"
	"github.com/rohitkandpal03/shopz-store/repository"
	"github.com/rohitkandpal03/shopz-store/routes"
	"github.com/rohitkandpal03/shopz-store/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	// --- Infrastructure ---

	db, err := database.Connect(cfg.PostgresDSN)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.Order{}, &models.OrderItem{}); err != nil {
		zap.L().Fatal("Failed to migrate schema", zap.Error(err))
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	// --- Wiring ---

	cartRepo := repository.NewGormCartRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)

	pageCache := cache.NewProductCache(redisClient)
	tokenService := services.NewTokenService(cfg.JWTSecret)

	cartService := services.NewCartService(cartRepo, productRepo, pageCache)
	productService := services.NewProductService(productRepo, pageCache)
	authService := services.NewAuthService(userRepo, tokenService, cartService)
	orderService := services.NewOrderService(orderRepo, cartRepo, userRepo, producer, db)

	productController := controllers.NewProductController(productService, cfg.LatestProductsLimit)
	cartController := controllers.NewCartController(cartService)
	authController := controllers.NewAuthController(authService)
	orderController := controllers.NewOrderController(orderService)

	// --- HTTP server ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(logger.RequestLogger())
	r.Use(middleware.Session(cfg.SessionCookieMaxAge))
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r, tokenService, productController, cartController, authController, orderController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Storefront service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down storefront service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	producer.Close()
	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Storefront service stopped gracefully")
}
