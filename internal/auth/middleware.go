package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

const (
	userClaimsKey  = "auth_user_claims"
	adminClaimsKey = "auth_admin_claims"
)

// AuthMiddleware guards API handlers by resolving verified claims from the request.
type AuthMiddleware struct {
	resolver *Resolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver *Resolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireUser rejects requests without a valid user credential with a 401 carrying message.
func (m *AuthMiddleware) RequireUser(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := m.resolver.ResolveUser(c)
		if !ok {
			return apperrors.NewUnauthorized(message)
		}
		c.Locals(userClaimsKey, claims)
		return c.Next()
	}
}

// RequireAdmin rejects requests without a valid admin credential with a 401 carrying message.
func (m *AuthMiddleware) RequireAdmin(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := m.resolver.ResolveAdmin(c)
		if !ok {
			return apperrors.NewUnauthorized(message)
		}
		c.Locals(adminClaimsKey, claims)
		return c.Next()
	}
}

// UserClaimsFromContext retrieves the claims stored by RequireUser.
func UserClaimsFromContext(c *fiber.Ctx) (*UserClaims, bool) {
	claims, ok := c.Locals(userClaimsKey).(*UserClaims)
	return claims, ok && claims != nil
}

// AdminClaimsFromContext retrieves the claims stored by RequireAdmin.
func AdminClaimsFromContext(c *fiber.Ctx) (*AdminClaims, bool) {
	claims, ok := c.Locals(adminClaimsKey).(*AdminClaims)
	return claims, ok && claims != nil
}
