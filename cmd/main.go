package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/Aakash6545/ServerCore/config"
	"github.com/Aakash6545/ServerCore/db"
	"github.com/Aakash6545/ServerCore/internal/account/handler"
	"github.com/Aakash6545/ServerCore/internal/account/media"
	repo "github.com/Aakash6545/ServerCore/internal/account/repository/postgres"
	"github.com/Aakash6545/ServerCore/internal/account/service"
	"github.com/Aakash6545/ServerCore/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error(ctx, "database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	mediaStore, err := media.NewS3Store(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "media store setup failed", "error", err)
		os.Exit(1)
	}

	userStore := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin, cfg.TokenLeewaySec)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	userService := service.NewUserService(userStore, mediaStore, tokenService, hasher, logger)
	authHandler := handler.NewAuthHandler(userService)
	authMiddleware := handler.NewAuthMiddleware(tokenService, userStore)

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024,
	})
	handler.RegisterRoutes(app, authHandler, authMiddleware)

	logger.Info(ctx, "server listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
