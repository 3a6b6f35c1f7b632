package middleware

import (
	"strings"

	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// RequireAuth validates the JWT, checks the single-session token version
// against the DB and stores the fully resolved Actor in locals. Role and clinic
// are resolved here once; everything downstream works on the plain Actor value.
func RequireAuth(employeeRepo repository.EmployeeRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		employee, err := employeeRepo.FindByID(claims.EmployeeID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Employee not found"})
		}

		if employee.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		if !employee.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Account is inactive"})
		}

		c.Locals(actorKey, authz.Actor{
			ID:       employee.ID,
			Email:    employee.Email,
			Name:     employee.FullName,
			Role:     employee.Role,
			ClinicID: employee.ClinicID,
		})

		return c.Next()
	}
}

// RequireAdmin rejects non-admin actors before the handler runs.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(actorKey).(authz.Actor)
		if !ok || actor.Role != model.RoleAdmin {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin role"})
		}
		return c.Next()
	}
}

// ActorFromCtx returns the Actor stored by RequireAuth.
func ActorFromCtx(c *fiber.Ctx) (authz.Actor, bool) {
	actor, ok := c.Locals(actorKey).(authz.Actor)
	return actor, ok
}
