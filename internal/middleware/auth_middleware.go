package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/photomap-backend/internal/models"
	jwtpkg "github.com/sefazor/photomap-backend/pkg/jwt"
)

// AuthMiddleware validates the Bearer token and stores the username claim in
// locals for the handlers behind it.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtpkg.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		username, ok := claims["username"].(string)
		if !ok || username == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid username in token"))
		}

		c.Locals("username", username)
		return c.Next()
	}
}
