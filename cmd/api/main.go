// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

// Command api runs the BrainWave HTTP API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hamzahey/brainwave-api/internal/admin"
	"github.com/hamzahey/brainwave-api/internal/analysis"
	"github.com/hamzahey/brainwave-api/internal/api"
	"github.com/hamzahey/brainwave-api/internal/auth"
	"github.com/hamzahey/brainwave-api/internal/doctor"
	"github.com/hamzahey/brainwave-api/internal/patient"
	"github.com/hamzahey/brainwave-api/internal/platform/config"
	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/migration"
	"github.com/hamzahey/brainwave-api/internal/platform/postgres"
	"github.com/hamzahey/brainwave-api/internal/platform/redis"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.SetDefault(logger)
	}

	// 2. Storage
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// 3. Schema
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// 4. Security
	tokens, err := sec.NewTokenService(
		cfg.JWTAccessSecret, cfg.JWTRefreshSecret,
		constants.AuthIssuer,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	if err != nil {
		return err
	}

	// 5. Domain wiring
	users := auth.NewPostgresRepository(pool)
	patients := patient.NewPostgresRepository(pool)
	doctors := doctor.NewPostgresRepository(pool)
	throttle := auth.NewRedisThrottle(redisClient)

	authService := auth.NewService(users, users, patients, doctors, throttle, tokens, logger)
	cookies := auth.NewCookieWriter(tokens.AccessTTL(), tokens.RefreshTTL(), cfg.SecureCookies)

	analysisRepo := analysis.NewPostgresRepository(pool)
	analysisService := analysis.NewService(analysisRepo, logger)

	deps := api.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Pool:     pool,
		Redis:    redisClient,
		Tokens:   tokens,
		Auth:     auth.NewHandler(authService, cookies),
		Admin:    admin.NewHandler(patients, doctors),
		Analysis: analysis.NewHandler(analysisService),
	}

	// 6. Serve
	server := api.NewServer(ctx, deps)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", server.Addr),
			slog.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
