// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mixlist/mixlist/internal/platform/dberr"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

// seedAdminUsername is the well-known name of the built-in administrator.
const seedAdminUsername = "admin"

// SeedAdministrator ensures the built-in administrator account exists.
//
// Idempotent: if an account named "admin" is already present it is left
// untouched, including its password. The password parameter only applies on
// the very first boot against an empty database.
func SeedAdministrator(ctx context.Context, repo UserRepository, password string, logger *slog.Logger) error {
	_, err := repo.FindByUsername(ctx, seedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &User{
		Username:     seedAdminUsername,
		Email:        "admin@mixlist.fm",
		PasswordHash: hash,
		Role:         sec.RoleAdministrator,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	logger.InfoContext(ctx, "admin_account_seeded", slog.Int64("user_id", admin.ID))
	return nil
}
