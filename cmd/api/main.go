package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"inventory-service/internal/alerts"
	"inventory-service/internal/auth"
	"inventory-service/internal/cache"
	"inventory-service/internal/config"
	"inventory-service/internal/events"
	"inventory-service/internal/handlers"
	"inventory-service/internal/metrics"
	"inventory-service/internal/repository"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "inventory-service/docs"
)

// @title           Inventory Service API
// @version         1.0
// @description     Inventory and staff management with low stock alerting

// @host      localhost:8080
// @BasePath  /api

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Inventory Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.OpenDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer repository.CloseDatabase(db)

	inventoryRepo := repository.NewInventoryRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	appMetrics := metrics.New()

	// Event publisher: Kafka when enabled, in-memory otherwise
	var publisher events.EventPublisher = events.NewEventPublisher(appLogger)
	var kafkaPublisher *events.KafkaEventPublisher
	if cfg.UseKafka {
		appLogger.Info("📡 Kafka Configuration",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic_products", cfg.KafkaTopicProducts),
			zap.String("topic_staff", cfg.KafkaTopicStaff),
			zap.String("topic_alerts", cfg.KafkaTopicAlerts),
			zap.String("acks", cfg.KafkaAcks),
		)
		kafkaPublisher, err = events.NewKafkaEventPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Kafka unavailable, falling back to in-memory event publisher", zap.Error(err))
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	}

	sinks := []alerts.Sink{alerts.ConsoleSink(appLogger)}
	if cfg.EmailEnabled() {
		appLogger.Info("📧 Email alerts enabled",
			zap.String("smtp_host", cfg.SMTPHost),
			zap.Strings("to", cfg.AlertEmailTo),
		)
		sinks = append(sinks, alerts.EmailSink(alerts.NewMailer(cfg, appLogger)))
	}
	if kafkaPublisher != nil {
		sinks = append(sinks, alerts.EventSink(kafkaPublisher, cfg.AlertThreshold))
	}

	alertService := alerts.NewAlertService(cfg.AlertThreshold, sinks, appLogger, appMetrics)
	checker := alerts.NewChecker(inventoryRepo, alertService, appLogger, appMetrics)

	var productCache cache.Cache
	if cfg.UseCache {
		productCache = cache.NewCache(cfg, appLogger)
		defer productCache.Close()
	} else {
		appLogger.Info("Cache disabled (USE_CACHE=false)")
	}

	inventoryService := service.NewInventoryService(inventoryRepo, checker, publisher, productCache, cache.TTL(cfg.CacheTTL), appLogger)
	staffService := service.NewStaffService(staffRepo, publisher, appLogger)

	handlers.RegisterValidators()
	productHandler := handlers.NewProductHandler(inventoryService, appLogger)
	staffHandler := handlers.NewStaffHandler(staffService, appLogger)
	alertHandler := handlers.NewAlertHandler(checker, alertService.Sinks(), appLogger)

	requestIDStore := middleware.NewInMemoryRequestIDStore()
	defer requestIDStore.Close()

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(appMetrics.GinMiddleware())
	router.Use(middleware.ErrorHandler(appLogger))
	router.NoRoute(middleware.NoRouteHandler())

	router.GET("/health", healthCheck(db))
	router.GET("/metrics", appMetrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// writes are open unless AUTH_ENABLED
	writes := api.Group("")
	if cfg.AuthEnabled {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, appLogger)
		authHandler := auth.NewAuthHandler(jwtManager, cfg.AdminUsername, cfg.AdminPassword, appLogger)
		api.POST("/auth/login", authHandler.Login)
		writes.Use(middleware.AuthMiddleware(jwtManager, appLogger))
		appLogger.Info("🔐 JWT authentication enabled for write endpoints")
	}
	writes.Use(middleware.IdempotencyMiddleware(requestIDStore, appLogger, 5*time.Minute))

	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:id", productHandler.GetProduct)
	writes.POST("/products", productHandler.CreateProduct)
	writes.PUT("/products/:id", productHandler.UpdateProduct)
	writes.PATCH("/products/:id/quantity", productHandler.UpdateQuantity)
	writes.DELETE("/products/:id", productHandler.DeleteProduct)

	api.GET("/staff", staffHandler.ListStaff)
	api.GET("/staff/:id", staffHandler.GetStaff)
	writes.POST("/staff", staffHandler.CreateStaff)
	writes.PUT("/staff/:id", staffHandler.UpdateStaff)
	writes.DELETE("/staff/:id", staffHandler.DeleteStaff)

	api.GET("/alerts", alertHandler.GetAlerts)
	writes.POST("/alerts/check", alertHandler.RunCheck)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		checker.Run(ctx, cfg.AlertInitialDelay, cfg.AlertPollInterval)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	wg.Wait()

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "inventory-service",
		})
	}
}
