package handlers

import (
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/caelum-portal/pkg/util"
)

// PageRenderer renders site pages. The real renderer lives outside this service.
type PageRenderer interface {
	Render(c *fiber.Ctx, path string) error
}

type shellRenderer struct {
	title string
}

// NewShellRenderer returns a renderer that writes a minimal HTML document naming the page.
func NewShellRenderer(title string) PageRenderer {
	return shellRenderer{title: title}
}

func (r shellRenderer) Render(c *fiber.Ctx, path string) error {
	c.Type("html", "utf-8")
	return c.SendString("<!doctype html><html><head><title>" + html.EscapeString(r.title) +
		"</title></head><body data-page=\"" + html.EscapeString(path) + "\"></body></html>")
}

// PagesHandler serves every non-API GET once the route gate has allowed it.
type PagesHandler struct {
	renderer PageRenderer
}

// NewPagesHandler constructs handler.
func NewPagesHandler(renderer PageRenderer) *PagesHandler {
	return &PagesHandler{renderer: renderer}
}

// Serve renders the requested page.
func (h *PagesHandler) Serve(c *fiber.Ctx) error {
	path := c.Path()
	if strings.HasPrefix(path, "/api") {
		return apperrors.NewNotFound("Resource not found")
	}
	return h.renderer.Render(c, path)
}
