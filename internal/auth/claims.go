package auth

import (
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// Claim is the verified payload of a token. Only UserClaims and AdminClaims implement it.
type Claim interface {
	jwt.Claims
	Principal() domain.PrincipalType
	sealed()
}

// UserClaims identifies a regular user.
type UserClaims struct {
	UserID   string          `json:"userId"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
	UserType domain.UserType `json:"userType"`
	jwt.RegisteredClaims
}

// AdminClaims identifies an admin console operator.
type AdminClaims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func (*UserClaims) Principal() domain.PrincipalType  { return domain.PrincipalUser }
func (*AdminClaims) Principal() domain.PrincipalType { return domain.PrincipalAdmin }

func (*UserClaims) sealed()  {}
func (*AdminClaims) sealed() {}

func (c *UserClaims) identified() bool  { return c.UserID != "" }
func (c *AdminClaims) identified() bool { return c.AdminID != "" }
