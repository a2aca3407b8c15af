// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

// Command createadmin seeds the first administrator account. It is
// idempotent: when a user with the configured email already exists, the
// command reports it and exits cleanly, so it is safe to run on every
// deployment.
//
// Usage:
//
//	ADMIN_EMAIL=admin@brainwave.health ADMIN_PASSWORD=... go run ./cmd/createadmin
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hamzahey/brainwave-api/internal/auth"
	"github.com/hamzahey/brainwave-api/internal/platform/config"
	"github.com/hamzahey/brainwave-api/internal/platform/migration"
	"github.com/hamzahey/brainwave-api/internal/platform/postgres"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
	"github.com/hamzahey/brainwave-api/pkg/uuid"
)

type adminConfig struct {
	Email     string `env:"ADMIN_EMAIL,required"`
	Password  string `env:"ADMIN_PASSWORD,required"`
	FirstName string `env:"ADMIN_FIRST_NAME" envDefault:"System"`
	LastName  string `env:"ADMIN_LAST_NAME"  envDefault:"Administrator"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("admin bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	adminCfg := &adminConfig{}
	if err := env.Parse(adminCfg); err != nil {
		return fmt.Errorf("parsing admin environment: %w", err)
	}
	adminCfg.Email = strings.ToLower(strings.TrimSpace(adminCfg.Email))
	if len(adminCfg.Password) < auth.MinPasswordLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at least %d characters", auth.MinPasswordLength)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	users := auth.NewPostgresRepository(pool)

	existing, err := users.FindByEmail(ctx, adminCfg.Email)
	if err != nil && !errors.Is(err, auth.ErrNotFound) {
		return err
	}
	if existing != nil {
		logger.Info("admin already exists, nothing to do",
			slog.String("user_id", existing.ID),
		)
		return nil
	}

	hash, err := sec.HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}

	admin := &auth.User{
		ID:           uuid.New(),
		Email:        adminCfg.Email,
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
		FirstName:    adminCfg.FirstName,
		LastName:     adminCfg.LastName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return err
	}

	logger.Info("admin account created",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
	return nil
}
