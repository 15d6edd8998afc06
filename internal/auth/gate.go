package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

// RouteClass is the access category of a page path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteUserProtected
	RouteUserAuthOnly
	RouteAdminProtected
	RouteAdminPublic
)

func (rc RouteClass) String() string {
	switch rc {
	case RouteUserProtected:
		return "user-protected"
	case RouteUserAuthOnly:
		return "user-auth-only"
	case RouteAdminProtected:
		return "admin-protected"
	case RouteAdminPublic:
		return "admin-public"
	default:
		return "public"
	}
}

const (
	UserLoginPath      = "/login"
	UserDashboardPath  = "/dashboard"
	AdminLoginPath     = "/admin/login"
	AdminDashboardPath = "/admin/dashboard"
	callbackQueryParam = "callbackUrl"
)

type routeRule struct {
	prefix string
	class  RouteClass
}

// routeTable is grouped by category. Categories are checked in the order below, so the
// admin public pages are carved out of the broader /admin prefix.
var routeTable = []routeRule{
	{prefix: "/admin/login", class: RouteAdminPublic},
	{prefix: "/admin/register", class: RouteAdminPublic},
	{prefix: "/admin", class: RouteAdminProtected},
	{prefix: "/login", class: RouteUserAuthOnly},
	{prefix: "/register", class: RouteUserAuthOnly},
	{prefix: "/dashboard", class: RouteUserProtected},
	{prefix: "/lesson-planner", class: RouteUserProtected},
	{prefix: "/monica-chat", class: RouteUserProtected},
	{prefix: "/investor", class: RouteUserProtected},
}

// gateExcludedPrefixes are paths (after the leading slash) the gate never inspects.
var gateExcludedPrefixes = []string{"api", "_next/static", "_next/image", "favicon.ico", "assets", "health"}

// Classify maps a path onto its route class by prefix.
func Classify(path string) RouteClass {
	for _, rule := range routeTable {
		if strings.HasPrefix(path, rule.prefix) {
			return rule.class
		}
	}
	return RoutePublic
}

// GateDecision is the outcome of evaluating a request at the edge.
type GateDecision struct {
	Class    RouteClass
	Redirect bool
	Location string
}

// Decide evaluates a path against cookie presence only. Token validity is not checked
// here; handlers verify credentials through the Resolver.
func Decide(path string, hasUserCookie, hasAdminCookie bool) GateDecision {
	class := Classify(path)
	decision := GateDecision{Class: class}

	switch class {
	case RouteUserProtected:
		if !hasUserCookie {
			decision.Redirect, decision.Location = true, withCallback(UserLoginPath, path)
		}
	case RouteUserAuthOnly:
		if hasUserCookie {
			decision.Redirect, decision.Location = true, UserDashboardPath
		}
	case RouteAdminProtected:
		if !hasAdminCookie {
			decision.Redirect, decision.Location = true, withCallback(AdminLoginPath, path)
		}
	case RouteAdminPublic:
		if hasAdminCookie && strings.HasPrefix(path, AdminLoginPath) {
			decision.Redirect, decision.Location = true, AdminDashboardPath
		}
	}
	return decision
}

func withCallback(target, original string) string {
	return target + "?" + url.Values{callbackQueryParam: {original}}.Encode()
}

// GateApplies reports whether the gate inspects path at all.
func GateApplies(path string) bool {
	rest := strings.TrimPrefix(path, "/")
	if strings.Contains(rest, ".") {
		return false
	}
	for _, prefix := range gateExcludedPrefixes {
		if strings.HasPrefix(rest, prefix) {
			return false
		}
	}
	return true
}

// GateObserver is notified of every redirect issued by the gate.
type GateObserver interface {
	RecordGateRedirect(class, location string)
}

// RouteGate redirects page requests based on which session cookies are present.
// observer may be nil.
func RouteGate(observer GateObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !GateApplies(path) {
			return c.Next()
		}

		_, hasUser := CookieToken(c, domain.PrincipalUser)
		_, hasAdmin := CookieToken(c, domain.PrincipalAdmin)

		decision := Decide(path, hasUser, hasAdmin)
		if !decision.Redirect {
			return c.Next()
		}
		if observer != nil {
			observer.RecordGateRedirect(decision.Class.String(), decision.Location)
		}
		return c.Redirect(decision.Location, fiber.StatusTemporaryRedirect)
	}
}
