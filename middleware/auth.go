// middleware/auth.go
package middleware

import (
	"log"
	"strconv"

	"class-quest-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireUser resolves the X-User-ID header into a loaded user and stashes
// it in the request context. Session mechanics live in front of this
// service; we only trust the forwarded identity.
func RequireUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Get("X-User-ID")
		if idStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID header",
			})
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid X-User-ID header",
			})
		}

		var user models.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "unknown user",
				})
			}
			log.Printf("❌ [AUTH] user lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "user lookup failed",
			})
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

// RequireAdmin gates a route group to admin users. Must run after
// RequireUser.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
