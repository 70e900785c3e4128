// Package main is the entry point of the claim assessment API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"insuro/internal/app"
	"insuro/internal/config"
	"insuro/internal/handlers"
	"insuro/internal/repositories"
	"insuro/internal/routes"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if err := config.InitLogger(cfg.Log); err != nil {
		zap.L().Fatal("failed to initialise logger", zap.Error(err))
	}
	defer func() { _ = zap.L().Sync() }()

	deps, err := app.New(cfg)
	if err != nil {
		zap.L().Fatal("failed to start", zap.Error(err))
	}
	defer deps.Close()

	// Report connection pool usage periodically
	go func() {
		sqlDB, err := deps.DB.DB()
		if err != nil {
			return
		}
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s := sqlDB.Stats()
			zap.L().Debug("db pool",
				zap.Int("open", s.OpenConnections),
				zap.Int("idle", s.Idle),
				zap.Int("in_use", s.InUse),
				zap.Int64("wait_count", s.WaitCount),
			)
		}
	}()

	server := fiber.New(fiber.Config{AppName: "insuro " + version})
	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))
	server.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(server, routes.Handlers{
		Claims:     handlers.NewClaimHandler(deps.Intake),
		Assessment: handlers.NewAssessmentHandler(deps.Assessment, deps.Intake),
		Admin:      handlers.NewAdminHandler(deps.Review, deps.Stats),
		Health: handlers.NewHealthHandler(version, map[string]handlers.Check{
			"database": func(ctx context.Context) error { return repositories.Ping(ctx, deps.DB) },
			"cache":    deps.Cache.Ping,
		}),
	}, routes.Options{
		JWTSecret:  cfg.JWTSecret,
		RateLimit:  cfg.RateLimit.Max,
		RateWindow: cfg.RateLimit.Window,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zap.L().Info("shutting down")
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			zap.L().Error("shutdown failed", zap.Error(err))
		}
	}()

	zap.L().Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := server.Listen(":" + cfg.Port); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
	}
}
