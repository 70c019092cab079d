// cmd/chatbot-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"airline-bot/internal/airports"
	"airline-bot/internal/chat"
	"airline-bot/internal/common/config"
	"airline-bot/internal/common/database"
	chttp "airline-bot/internal/common/http"
	"airline-bot/internal/common/logger"
	"airline-bot/internal/common/observability"
	airportlookup "airline-bot/internal/handlers/airport-lookup"
	baggagepolicy "airline-bot/internal/handlers/baggage-policy"
	batteryrule "airline-bot/internal/handlers/battery-rule"
	liveflights "airline-bot/internal/handlers/live-flights"
	tsarule "airline-bot/internal/handlers/tsa-rule"
	"airline-bot/internal/intent"
	"airline-bot/internal/server"
	"airline-bot/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chatbot server...",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load airports dataset, downloading when the local file is absent ---
	dataset, err := airports.LoadFile(cfg.Dataset.Path)
	if err != nil {
		zapLog.Warn("local dataset unavailable, downloading",
			zap.String("path", cfg.Dataset.Path),
			zap.Error(err),
		)
		client := chttp.NewClient(time.Duration(cfg.Dataset.DownloadTimeout) * time.Millisecond)
		err = retryWithBackoff(func() error {
			var derr error
			dataset, derr = airports.Download(ctx, client, cfg.Dataset.URL)
			return derr
		}, 3, 2*time.Second, zapLog, "Airports dataset download")
		if err != nil {
			zapLog.Fatal("airports dataset failed after retries", zap.Error(err))
		}
	}
	zapLog.Info("Airports dataset loaded", zap.Int("airports", dataset.Len()))

	// --- Init Redis fallback cache; the bot runs without it ---
	var cache liveflights.Cache
	if cfg.Redis.Enabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var rerr error
			redisClient, rerr = database.NewRedis(cfg.Redis)
			if rerr != nil {
				return rerr
			}
			return redisClient.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, fallback cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cache = redisClient
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Load intent registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("intent registry load failed", zap.Error(err))
	}

	// --- Wire the chat engine ---
	engine := chat.NewEngine(
		intent.NewRouter(dataset),
		chat.Handlers{
			Airports: airportlookup.NewHandler(dataset, log),
			Flights:  liveflights.NewHandler(liveflights.FromAppConfig(cfg.OpenSky), dataset, cache, log),
			Tsa:      tsarule.NewHandler(log),
			Battery:  batteryrule.NewHandler(log),
			Baggage:  baggagepolicy.NewHandler(log),
		},
		obs,
		log,
	)

	srv := server.New(cfg, engine, reg, dataset.Len(), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("http server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("chatbot server stopped")
}
