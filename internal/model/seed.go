package model

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/entity"
)

// SeedOperator creates the operator admin account from config on first boot.
// It is a no-op when the users table is not empty or the credentials are not
// configured.
func SeedOperator(ctx context.Context, repo Repository, cfg config.Config) (bool, error) {
	if repo == nil {
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	username := strings.TrimSpace(cfg.AdminUsername)
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || username == "" || password == "" {
		return false, nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	user := &entity.DbUser{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(cfg.AdminDisplayName),
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
