package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/caelum-portal/internal/api/dto"
	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/domain"
	"github.com/spec-kit/caelum-portal/internal/service"
	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

// UsersHandler exposes auth endpoints for site users.
type UsersHandler struct {
	auth    *service.AuthService
	carrier *auth.Carrier
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, carrier *auth.Carrier) *UsersHandler {
	return &UsersHandler{auth: authService, carrier: carrier}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, issued, err := h.auth.RegisterUser(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(apperrors.SuccessBody("Registration successful", dto.UserAuthResult{
		User:  dto.NewUserResponse(user),
		Token: issued.Token,
	}))
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, issued, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.carrier.Attach(c, domain.PrincipalUser, issued.Token)

	return c.JSON(apperrors.SuccessBody("Login successful", dto.UserAuthResult{
		User:  dto.NewUserResponse(user),
		Token: issued.Token,
	}))
}

// Logout handles GET and POST /api/auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	h.carrier.Clear(c, domain.PrincipalUser)
	h.auth.Logout(c.UserContext(), domain.PrincipalUser)
	return c.JSON(apperrors.SuccessBody("Logged out successfully", nil))
}

// Me handles GET /api/auth/me. Requires AuthMiddleware.RequireUser.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.UserClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	user, err := h.auth.CurrentUser(c.UserContext(), claims)
	if err != nil {
		return err
	}
	return c.JSON(apperrors.SuccessBody("User retrieved successfully", dto.NewUserResponse(user)))
}
