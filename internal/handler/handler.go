package handler

import (
	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/middleware"
	"go-dental-erp/internal/serviceerr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actor pulls the resolved Actor out of the request context (set by RequireAuth)
func actor(c *fiber.Ctx) authz.Actor {
	a, _ := middleware.ActorFromCtx(c)
	return a
}

// writeError maps a service error onto the HTTP response. Structured errors
// carry their own status hint; anything else is treated as a 400 the way the
// auth flows do.
func writeError(c *fiber.Ctx, err error) error {
	if se, ok := serviceerr.As(err); ok {
		return c.Status(se.Status).JSON(fiber.Map{"error": se.Message, "code": se.Code})
	}
	return c.Status(400).JSON(fiber.Map{"error": err.Error()})
}

// parseUUID parses a route param as UUID
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
