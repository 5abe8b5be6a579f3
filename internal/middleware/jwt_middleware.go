package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kritika/internal/models"
	"kritika/internal/repositories"
	"kritika/internal/services"
)

const currentUserKey = "currentUser"

// Authenticate is a Fiber middleware that resolves the caller from a bearer
// token. Requests without an Authorization header pass through anonymous;
// requests with an invalid, expired or orphaned token get 401. The user
// record is loaded fresh so role changes and deletions take effect
// immediately.
func Authenticate(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid or expired token",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not resolve token",
			})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil for anonymous
// requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
