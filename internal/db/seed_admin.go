package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/usforever/api/internal/config"
	"github.com/usforever/api/internal/domain/user"
	"github.com/usforever/api/internal/repo"
)

// EnsureAdminUser creates the configured admin account when it does not
// exist yet. It does nothing without ADMIN_EMAIL and ADMIN_PASSWORD.
func EnsureAdminUser(ctx context.Context, users repo.UserStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, found, err := users.GetByEmail(ctx, cfg.AdminEmail)

	if err != nil {
		return err
	}

	if found {
		return nil
	}

	password := cfg.AdminPassword

	created, err := users.Create(ctx, user.User{
		Name:        cfg.AdminName,
		DisplayName: cfg.AdminDisplayName,
		Email:       cfg.AdminEmail,
		Role:        user.RoleAdmin,
		Password:    &password,
	})

	// another instance seeded the same email between our lookup and insert
	if errors.Is(err, repo.ErrIntegrity) {
		slog.InfoContext(ctx, "admin user already present", "email", cfg.AdminEmail)
		return nil
	}

	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "admin user created", "user_id", created.ID, "email", created.Email)

	return nil
}
