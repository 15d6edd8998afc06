package http

import "github.com/gofiber/fiber/v2"

// NewApp builds the Fiber app shared by cmd/api and the route tests. Immutable makes
// values read from the request (body, params, headers) safe to keep after it ends.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   name,
		Immutable: true,
	})
}
