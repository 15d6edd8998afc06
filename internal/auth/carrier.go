package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

const (
	// UserCookieName carries the user session token.
	UserCookieName = "auth-token"
	// AdminCookieName carries the admin session token.
	AdminCookieName = "admin-auth-token"

	bearerPrefix = "Bearer "
)

// CredentialRequest is the read side of an inbound request. *fiber.Ctx satisfies it.
type CredentialRequest interface {
	Get(key string, defaultValue ...string) string
	Cookies(key string, defaultValue ...string) string
}

// Carrier moves tokens between responses and requests via cookies and bearer headers.
type Carrier struct {
	secure bool
}

// NewCarrier returns a carrier; secure marks cookies Secure (production only).
func NewCarrier(secure bool) *Carrier {
	return &Carrier{secure: secure}
}

// CookieName returns the cookie that carries pt's token.
func CookieName(pt domain.PrincipalType) string {
	if pt == domain.PrincipalAdmin {
		return AdminCookieName
	}
	return UserCookieName
}

func cookieMaxAge(pt domain.PrincipalType) time.Duration {
	if pt == domain.PrincipalAdmin {
		return AdminTokenTTL
	}
	return UserTokenTTL
}

// Attach sets pt's session cookie on the outgoing response.
func (cr *Carrier) Attach(c *fiber.Ctx, pt domain.PrincipalType, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName(pt),
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieMaxAge(pt) / time.Second),
		Secure:   cr.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires pt's session cookie in the browser.
func (cr *Carrier) Clear(c *fiber.Ctx, pt domain.PrincipalType) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName(pt),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   cr.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ExtractBearer returns the token after a case-sensitive "Bearer " prefix.
// An empty remainder counts as no token.
func ExtractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// CookieToken returns pt's cookie value when present and non-empty.
func CookieToken(r CredentialRequest, pt domain.PrincipalType) (string, bool) {
	value := r.Cookies(CookieName(pt))
	return value, value != ""
}
