// Package main is the entry point of the Organiza AI API server.
//
//	@title			Organiza AI API
//	@version		1.0
//	@description	Event planning API: accounts, events, invitations, presence confirmation, and a planning assistant.
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"organizaai/config"
	_ "organizaai/docs"
	"organizaai/internal/adapters/assistant"
	"organizaai/internal/adapters/auth"
	"organizaai/internal/adapters/cache"
	"organizaai/internal/adapters/email"
	delivery "organizaai/internal/delivery/http"
	"organizaai/internal/delivery/http/controllers"
	"organizaai/internal/delivery/http/middleware"
	"organizaai/internal/domain"
	"organizaai/internal/repository/postgres"
	"organizaai/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	tokenExpiry     = 12 * time.Hour
	bcryptCost      = 10
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(ctx, db, logger); err != nil {
		cancel()
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}
	cancel()

	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)

	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to init mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	categoryCache := cache.NewCategoryCache(cfg.RedisAddr, cfg.RedisPassword, logger)

	var chatAssistant domain.ChatAssistant
	if cfg.OpenAIKey != "" {
		chatAssistant = assistant.NewOpenAIClient(nil, "", cfg.OpenAIKey, cfg.OpenAIModel)
	}

	userService := services.NewUserService(userRepo, hasher, tokenIssuer, tokenExpiry, serviceTimeout)
	eventService := services.NewEventService(eventRepo, categoryRepo, categoryCache, serviceTimeout)
	inviteService := services.NewInviteService(inviteRepo, eventRepo, userRepo, emailService, serviceTimeout)

	mux := delivery.NewRouter(delivery.Controllers{
		Health:    controllers.NewHealthController(logger, db),
		Auth:      controllers.NewAuthController(logger, userService),
		User:      controllers.NewUserController(logger, userService),
		Event:     controllers.NewEventController(logger, eventService),
		Invite:    controllers.NewInviteController(logger, inviteService),
		Assistant: controllers.NewAssistantController(logger, chatAssistant),
	}, tokenVerifier)

	handler := middleware.RequestID(
		middleware.LoggingMiddleware(logger,
			middleware.CORS(cfg.CORSOrigins, mux)))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
