package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dadportal/dinojump-go/internal/api"
	"github.com/dadportal/dinojump-go/internal/factory"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
	redisstorage "github.com/dadportal/dinojump-go/internal/storage/redis"
)

func main() {
	// Local development overrides; missing file is fine
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
		LedgerConfig:   ledgerConfigFromEnv(),
		GuardianConfig: guardianConfigFromEnv(),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		LedgerService: app.Ledger,
		GuardianGate:  app.Gate,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func ledgerConfigFromEnv() ledger.Config {
	cfg := ledger.DefaultConfig()

	if v := os.Getenv("DEFAULT_DAILY_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit >= 0 {
			cfg.FallbackDefaults.DailyLimit = limit
		}
	}
	if v := os.Getenv("DEFAULT_DIFFICULTY"); v != "" {
		if d := model.Difficulty(v); d.IsValid() {
			cfg.FallbackDefaults.Difficulty = d
		}
	}

	return cfg
}

func guardianConfigFromEnv() guardian.Config {
	cfg := guardian.DefaultConfig()

	if v := os.Getenv("GUARDIAN_DEFAULT_PIN"); v != "" {
		cfg.DefaultPIN = v
	}

	return cfg
}
