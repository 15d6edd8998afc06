package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"abc123", "", false},
		{"", "", false},
		{"bearer abc123", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer a b", "a b", true},
	}

	for _, tt := range tests {
		token, ok := ExtractBearer(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.token, token, "header %q", tt.header)
	}
}

func TestCookieName(t *testing.T) {
	assert.Equal(t, "auth-token", CookieName(domain.PrincipalUser))
	assert.Equal(t, "admin-auth-token", CookieName(domain.PrincipalAdmin))
}

func cookieByName(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestCarrier_Attach(t *testing.T) {
	tests := []struct {
		name   string
		pt     domain.PrincipalType
		secure bool
		cookie string
		maxAge int
	}{
		{"user development", domain.PrincipalUser, false, "auth-token", 604800},
		{"admin development", domain.PrincipalAdmin, false, "admin-auth-token", 86400},
		{"user production", domain.PrincipalUser, true, "auth-token", 604800},
		{"admin production", domain.PrincipalAdmin, true, "admin-auth-token", 86400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carrier := NewCarrier(tt.secure)
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				carrier.Attach(c, tt.pt, "opaque-token")
				return c.SendStatus(http.StatusNoContent)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			cookie := cookieByName(t, resp, tt.cookie)
			assert.Equal(t, "opaque-token", cookie.Value)
			assert.Equal(t, tt.maxAge, cookie.MaxAge)
			assert.Equal(t, "/", cookie.Path)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
			assert.Equal(t, tt.secure, cookie.Secure)
		})
	}
}

func TestCarrier_Clear(t *testing.T) {
	carrier := NewCarrier(false)
	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		carrier.Clear(c, domain.PrincipalAdmin)
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "still-here"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	cookie := cookieByName(t, resp, AdminCookieName)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.Expires.Before(time.Now()))
	for _, c := range resp.Cookies() {
		assert.NotEqual(t, UserCookieName, c.Name, "clearing admin must not touch the user cookie")
	}
}
