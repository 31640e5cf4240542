package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-social-backend/config"
	v1 "go-social-backend/internal/delivery/http/v1"
	"go-social-backend/internal/repository/postgres"
	"go-social-backend/internal/usecase"
	"go-social-backend/pkg/auth"
	"go-social-backend/pkg/cache"
	"go-social-backend/pkg/database"
	"go-social-backend/pkg/logger"
	"go-social-backend/pkg/media"
	"go-social-backend/pkg/redis"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting social backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Cache (optional; the service runs without it)
	var cacheStore cache.Store = cache.Noop{}
	redisClient, err := redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Cache unavailable, serving without it", "error", err)
	} else {
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient)
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)

	// 6. Setup Media Handler and Token Issuer
	mediaHandler := media.NewHandler(cfg.UploadDir)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	postUC := usecase.NewPostUsecase(postRepo, userRepo, mediaHandler, cacheStore)
	profileUC := usecase.NewProfileUsecase(userRepo, profileRepo, mediaHandler, cfg.AllowedImageExts)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:    authUC,
		PostUC:    postUC,
		ProfileUC: profileUC,
		Tokens:    tokens,
		Config:    cfg,
		Redis:     redisClient,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
