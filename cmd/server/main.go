package main

import (
	"context"   // Shutdown deadline and Redis ping
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signal plumbing
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"booking_system/internal/api"        // HTTP handlers and routes
	"booking_system/internal/config"     // Configuration
	"booking_system/internal/db"         // Database connection and migration
	"booking_system/internal/metrics"    // Prometheus collectors
	"booking_system/internal/middleware" // Gin middleware
	"booking_system/internal/repository" // Storage layer
	"booking_system/internal/service"    // Business logic
	"booking_system/internal/utils"      // Login attempt store

	"github.com/gin-contrib/cors"                             // CORS middleware
	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database and make sure the schema is current
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	validate := service.NewValidator()
	users := service.NewUserService(
		repository.NewUserRepository(gdb),
		validate,
		service.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL},
		loginThrottle(cfg),
	)
	payments := service.NewPaymentService(repository.NewPaymentRepository(gdb), validate)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		cors.New(corsConfig(cfg)),
	)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	metrics.Init()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(r, api.Deps{
		DB:        gdb,
		Users:     users,
		Payments:  payments,
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for an interrupt and drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// loginThrottle connects to Redis when configured; nil disables throttling
func loginThrottle(cfg *config.Config) *service.LoginThrottle {
	if !cfg.ThrottleEnabled() {
		logrus.Info("REDIS_ADDR not set, login throttling disabled")
		return nil
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return &service.LoginThrottle{
		Store:       utils.NewRedisAttemptStore(redisClient),
		MaxAttempts: cfg.LoginMaxAttempts,
		Window:      cfg.LoginLockout,
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
		c.AllowCredentials = true
	}
	return c
}
