package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	backend "github.com/resilia-ai/backend"
	"github.com/resilia-ai/backend/internal/config"
	"github.com/resilia-ai/backend/internal/domain"
	"github.com/resilia-ai/backend/internal/handler"
	"github.com/resilia-ai/backend/internal/repository"
	"github.com/resilia-ai/backend/internal/repository/memory"
	"github.com/resilia-ai/backend/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, using system environment", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		conversations domain.ConversationStore
		messages      domain.MessageStore
	)
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(backend.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		conversations = repository.NewConversationRepo(pool)
		messages = repository.NewMessageRepo(pool)
	} else {
		slog.Warn("DATABASE_URL not set, falling back to in-memory storage")
		conversations = memory.NewConversationStore()
		messages = memory.NewMessageStore()
	}

	aiClient := service.NewAIClient(cfg.EmotionServiceURL, cfg.GeminiAPIURL, cfg.GeminiAPIKey)
	chatService := service.NewChatService(conversations, messages, aiClient, aiClient)
	historyService := service.NewHistoryService(conversations, messages)

	router := handler.NewRouter(handler.Deps{
		Chat:    chatService,
		History: historyService,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}
