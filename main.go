package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fitbite/fitbite-bot/internal/bot"
	"github.com/fitbite/fitbite-bot/internal/config"
	"github.com/fitbite/fitbite-bot/internal/logger"
	"github.com/fitbite/fitbite-bot/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting fitbite bot")

	var store storage.Store
	if cfg.Redis.Host != "" {
		redisStore, err := storage.NewRedisStore(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("Using Redis persistence", "host", cfg.Redis.Host)
	} else {
		store = storage.NewMemoryStore()
		logger.Warn("REDIS_HOST not set, local state will not survive restarts")
	}

	telegramBot, err := bot.New(cfg.TelegramToken, cfg.APIBaseURL, store)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
	logger.Info("Bot stopped")
}
