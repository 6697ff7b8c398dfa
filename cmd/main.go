package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/learnhub/lms-webclient/docs"
	"github.com/learnhub/lms-webclient/internal/app"
	"github.com/learnhub/lms-webclient/internal/config"
	"github.com/learnhub/lms-webclient/internal/logger"
	"github.com/learnhub/lms-webclient/internal/session"
	"go.uber.org/zap"
)

// @title LMS Web Client API
// @version 1.0
// @description Backend-for-frontend of the learning management system web client

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey SessionID
// @in header
// @name X-Session-ID
// @description Session id issued by /auth/login. Browsers send it in the lms_session cookie instead.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LMS Web Client",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("session_store", cfg.Session.Store),
	)

	// Initialize session store
	var store app.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		// Test Redis connection
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		store = session.NewRedisStore(rdb)
	default:
		store = session.NewMemoryStore()
	}

	application := app.New(cfg, store, logger.Logger)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go application.RunSweeper(sweepCtx, cfg.Session.SweepInterval)

	// Start server
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     application.Router(),
		ReadTimeout: 60 * time.Second,
		// Uploads are streamed to the remote API within the request
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")
	stopSweep()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
