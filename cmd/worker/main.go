package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/knotworthy/knotworthy/internal/config"
	"github.com/knotworthy/knotworthy/internal/notify"
	"github.com/knotworthy/knotworthy/internal/queue"
	"github.com/knotworthy/knotworthy/internal/storage/redis"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Redis connection shared by queue consumers
	cache := redis.NewClient(cfg.Redis.URL)
	defer cache.Close()

	notifyQueue := queue.NewRedisQueue(cache.Client)
	notifier := notify.NewNotifier(cfg.Notify.HTTPTimeout, cfg.Notify.MaxRetries, logger)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < cfg.Notify.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			notifier.Run(ctx, notifyQueue, cfg.Notify.PopTimeout)
		}()
	}

	logger.Info("Notification worker started", zap.Int("workers", cfg.Notify.WorkerCount))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	wg.Wait()
	logger.Info("Worker exited")
}
