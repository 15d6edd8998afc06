package dto

import (
	"time"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// AdminLoginRequest payload for admin login.
type AdminLoginRequest struct {
	Email    string `json:"email" form:"email" validate:"email"`
	Password string `json:"password" form:"password" validate:"min=6"`
}

func (AdminLoginRequest) validationMessages() map[string]string {
	return loginMessages
}

// AdminResponse is an admin record without its password hash.
type AdminResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAdminResponse strips the password hash from admin.
func NewAdminResponse(admin *domain.AdminUser) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

// AdminAuthResult is returned by admin login.
type AdminAuthResult struct {
	Admin AdminResponse `json:"admin"`
	Token string        `json:"token"`
}
