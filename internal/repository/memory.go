package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// The in-memory repositories back local runs without POSTGRES_DSN. Missing rows are
// reported as pgx.ErrNoRows so callers behave as they would against Postgres. Stored
// strings are cloned: request-scoped values may alias buffers the server reuses.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository returns a process-local UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if sameEmail(existing.Email, user.Email) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicateEmail)
		}
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.Name = strings.Clone(user.Name)
	user.Email = strings.Clone(user.Email)
	user.PasswordHash = strings.Clone(user.PasswordHash)
	user.UserType = domain.UserType(strings.Clone(string(user.UserType)))
	user.Role = domain.UserRole(strings.Clone(string(user.Role)))
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if sameEmail(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]domain.AdminUser
}

// NewMemoryAdminRepository returns a process-local AdminRepository.
func NewMemoryAdminRepository() AdminRepository {
	return &memoryAdminRepository{admins: make(map[string]domain.AdminUser)}
}

func (r *memoryAdminRepository) GetByID(_ context.Context, id string) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &admin, nil
}

func (r *memoryAdminRepository) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, admin := range r.admins {
		if sameEmail(admin.Email, email) {
			a := admin
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryAdminRepository) Upsert(_ context.Context, admin *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if sameEmail(existing.Email, admin.Email) {
			*admin = existing
			return nil
		}
	}
	now := time.Now().UTC()
	admin.ID = uuid.NewString()
	admin.Email = strings.Clone(admin.Email)
	admin.Name = strings.Clone(admin.Name)
	admin.PasswordHash = strings.Clone(admin.PasswordHash)
	admin.Role = strings.Clone(admin.Role)
	admin.CreatedAt, admin.UpdatedAt = now, now
	r.admins[admin.ID] = *admin
	return nil
}

type memoryStatsRepository struct {
	mu     sync.RWMutex
	counts map[string]int64
}

// NewMemoryStatsRepository returns a StatsRepository with fixed counts per table.
func NewMemoryStatsRepository(counts map[string]int64) StatsRepository {
	copied := make(map[string]int64, len(counts))
	for k, v := range counts {
		copied[k] = v
	}
	return &memoryStatsRepository{counts: copied}
}

func (r *memoryStatsRepository) Count(_ context.Context, table string) (int64, error) {
	if _, ok := countQueries[table]; !ok {
		return 0, fmt.Errorf("count: unknown table %q", table)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counts[table], nil
}
