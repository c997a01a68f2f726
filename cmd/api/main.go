package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"generative-pets/internal/config"
	"generative-pets/internal/db"
	apihttp "generative-pets/internal/http"
	"generative-pets/internal/llm"
	"generative-pets/internal/repository"
	"generative-pets/internal/service"
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

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	chatRepo := repository.NewPgChatRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	prefRepo := repository.NewPgPreferenceRepository(pool)
	animalRepo := repository.NewPgAnimalRepository(pool)

	provider, providerName, err := llm.Select(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("llm provider init", zap.Error(err))
	}
	logger.Info("llm provider selected", zap.String("provider", providerName))

	uploads, err := service.NewUploadStore(cfg.UploadsDir)
	if err != nil {
		logger.Fatal("uploads dir", zap.Error(err))
	}

	advisorSvc := service.NewAdvisorService(provider, chatRepo, messageRepo, prefRepo, uploads, logger)
	suggestionSvc := service.NewSuggestionService(prefRepo, animalRepo)

	chatHandler := apihttp.NewChatHandler(logger, chatRepo, messageRepo, prefRepo, advisorSvc, suggestionSvc)
	animalHandler := apihttp.NewAnimalHandler(logger, animalRepo)
	router := apihttp.NewRouter(logger, chatHandler, animalHandler, cfg.UploadsDir)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
