package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesnest-web/internal/config"
	"notesnest-web/internal/handler"
	"notesnest-web/internal/logging"
	"notesnest-web/internal/repository"
	"notesnest-web/internal/service"
	"notesnest-web/internal/session"
	"notesnest-web/internal/view"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg.Session, logger)
	if err != nil {
		logger.Fatal("failed to set up session store", zap.Error(err))
	}
	defer closeStore()

	sessions := session.NewManager(store, session.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	})

	views, err := view.New()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	apiClient := &http.Client{Timeout: cfg.API.RequestTimeout}
	noteRepo := repository.NewNoteRepository(cfg.API.BaseURL, apiClient)
	authRepo := repository.NewAuthRepository(cfg.API.BaseURL, apiClient)

	notesService := service.NewNotesService(noteRepo, service.RetryPolicy{
		Attempts:  cfg.API.RetryAttempts,
		BaseDelay: cfg.API.RetryBaseDelay,
		Timeout:   cfg.API.RequestTimeout,
	}, cfg.Search.Threshold, logger)
	uploadService := service.NewUploadService(noteRepo, cfg.API.MaxUploadBytes, logger)
	authService := service.NewAuthService(authRepo, cfg.Admin.AuthMode, cfg.Admin.SecretHash, logger)
	adminService := service.NewAdminService(noteRepo, logger)

	r := handler.NewRouter(handler.Handlers{
		Pages:  handler.NewPageHandler(views),
		Notes:  handler.NewNotesHandler(notesService, views, cfg.API.BaseURL, cfg.ApprovedNotesURL(), logger),
		Upload: handler.NewUploadHandler(uploadService, views, logger),
		Auth:   handler.NewAuthHandler(authService, sessions, views, logger),
		Admin:  handler.NewAdminHandler(adminService, sessions, views, cfg.API.BaseURL, logger),
	}, sessions, logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting Notes Nest web server",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.Server.Env),
			zap.String("notes_api", cfg.API.BaseURL),
			zap.String("admin_auth", cfg.Admin.AuthMode),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// newSessionStore builds the configured store. The memory store is swept in
// the background until ctx ends.
func newSessionStore(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (session.Store, func(), error) {
	if cfg.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := session.NewRedisStore(client)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
		return store, func() { client.Close() }, nil
	}

	store := session.NewMemoryStore()
	go store.RunSweeper(ctx, time.Minute)
	return store, func() {}, nil
}
