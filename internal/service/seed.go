package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/config"
	"github.com/spec-kit/caelum-portal/internal/domain"
	"github.com/spec-kit/caelum-portal/internal/repository"
)

// SuperAdminRole is the role given to the seeded console operator.
const SuperAdminRole = "SuperAdmin"

// SeedAdmin ensures the super admin described by cfg exists. An existing admin with the
// same email is left as is, password included. The stored record is returned.
func SeedAdmin(ctx context.Context, repo repository.AdminRepository, hasher *auth.PasswordHasher, cfg config.SeedConfig) (*domain.AdminUser, error) {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("seed admin: email and password are required")
	}

	digest, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	admin := &domain.AdminUser{
		Email:        email,
		Name:         cfg.AdminName,
		PasswordHash: digest,
		Role:         SuperAdminRole,
	}
	if err := repo.Upsert(ctx, admin); err != nil {
		return nil, fmt.Errorf("seed admin %s: %w", email, err)
	}
	return admin, nil
}
