package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sosmed/internal/services"
)

// AuthRequired is a Fiber middleware guarding protected routes. A missing or
// malformed Authorization header is 401; a header that carries a token which
// fails signature or expiry checks is 403. On success the resolved identity
// is stored in the request Locals for downstream handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid Token",
			})
		}

		c.Locals("user_id", identity.ID)
		c.Locals("username", identity.Username)

		return c.Next()
	}
}
