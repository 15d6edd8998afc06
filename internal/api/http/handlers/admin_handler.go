package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/caelum-portal/internal/api/dto"
	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/domain"
	"github.com/spec-kit/caelum-portal/internal/service"
	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

// AdminHandler exposes the admin console API.
type AdminHandler struct {
	auth    *service.AuthService
	stats   *service.StatsService
	carrier *auth.Carrier
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, stats *service.StatsService, carrier *auth.Carrier) *AdminHandler {
	return &AdminHandler{auth: authService, stats: stats, carrier: carrier}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	admin, issued, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.carrier.Attach(c, domain.PrincipalAdmin, issued.Token)

	return c.JSON(apperrors.SuccessBody("Login successful", dto.AdminAuthResult{
		Admin: dto.NewAdminResponse(admin),
		Token: issued.Token,
	}))
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	h.carrier.Clear(c, domain.PrincipalAdmin)
	h.auth.Logout(c.UserContext(), domain.PrincipalAdmin)
	return c.JSON(apperrors.SuccessBody("Logged out successfully", nil))
}

// Stats handles GET /api/admin/stats. Requires AuthMiddleware.RequireAdmin.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	if _, ok := auth.AdminClaimsFromContext(c); !ok {
		return apperrors.NewUnauthorized("Admin authentication required")
	}
	stats := h.stats.Dashboard(c.UserContext())
	return c.JSON(apperrors.SuccessBody("Dashboard stats retrieved successfully", stats))
}
