package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lottery-secretary/internal/config"
	"lottery-secretary/internal/db"
	apihttp "lottery-secretary/internal/http"
	"lottery-secretary/internal/llm"
	"lottery-secretary/internal/rag"
	"lottery-secretary/internal/repository"
	"lottery-secretary/internal/service"
	"lottery-secretary/internal/telegram"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.MigrateOnStart {
		applied, err := db.Migrate(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		logger.Info("migrations applied", zap.Int("count", applied))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	txManager := repository.NewTxManager(pool)
	whitelistRepo := repository.NewPgWhitelistRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)
	actionRepo := repository.NewPgActionRepository(pool)
	statisticRepo := repository.NewPgStatisticRepository(pool)
	configRepo := repository.NewPgConfigRepository(pool)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, continuing without cache", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	ragClient := rag.NewClient(cfg.RAGBaseURL, cfg.RAGAccountID, cfg.RAGAPIToken, nil)
	telegramClient := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramBaseURL)
	if cfg.RAGName == "" {
		logger.Warn("RAG_NAME not configured, lottery questions will fail")
	}

	pricingSvc := service.NewPricingService(configRepo, redisClient, cfg.PricingCacheTTL(), logger)
	usageSvc := service.NewUsageService(txManager, userRepo, actionRepo, statisticRepo, pricingSvc, logger)
	orchestrator := service.NewOrchestrator(service.PipelineDeps{
		Access:          service.NewAccessService(whitelistRepo),
		Commands:        service.NewCommandService(userRepo, actionRepo, logger),
		Intent:          service.NewIntentService(llmClient, logger),
		Translator:      service.NewTranslationService(llmClient),
		Retriever:       service.NewRetrievalService(ragClient, cfg.RAGName, logger),
		Usage:           usageSvc,
		Replier:         telegramClient,
		Logger:          logger,
		DefaultLanguage: cfg.DefaultLanguage,
		Timezone:        cfg.Timezone,
	})

	var gate apihttp.UpdateGate
	if dedup := service.NewRedisUpdateDeduplicator(redisClient, cfg.UpdateDedupTTL()); dedup != nil {
		gate = dedup
	}

	adminTokens := service.NewAdminTokenService(cfg.AdminJWTSecret, cfg.AdminJWTTTL())
	if !adminTokens.Enabled() {
		logger.Warn("admin jwt secret not configured, admin api disabled")
	}

	webhookHandler := apihttp.NewWebhookHandler(orchestrator, gate, cfg.TelegramWebhookSecret, cfg.DefaultLanguage, logger)
	healthHandler := apihttp.NewHealthHandler(pool, logger)
	adminHandler := apihttp.NewAdminHandler(statisticRepo, pricingSvc, logger)
	router := apihttp.NewRouter(logger, webhookHandler, healthHandler, adminHandler, adminTokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
