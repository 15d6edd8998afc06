package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// AdminRepository handles persistence for admin console operators.
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	// Upsert inserts the admin or leaves an existing row with the same email untouched.
	Upsert(ctx context.Context, admin *domain.AdminUser) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, email, name, password_hash, role, created_at, updated_at`

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id=$1`, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE lower(email)=lower($1)`, email)
}

func (r *adminRepository) Upsert(ctx context.Context, admin *domain.AdminUser) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	// The no-op update makes RETURNING yield the existing row on conflict.
	const query = `
        INSERT INTO admin_users (email, name, password_hash, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT ((lower(email))) DO UPDATE SET email = admin_users.email
        RETURNING id, email, name, password_hash, role, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.Email,
		admin.Name,
		admin.PasswordHash,
		admin.Role,
	).Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash, &admin.Role, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) getOne(ctx context.Context, query string, arg string) (*domain.AdminUser, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	var admin domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Email,
		&admin.Name,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
