package middleware

import (
	"crypto/subtle"

	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminKeyHeader carries the admin shared secret.
const AdminKeyHeader = "X-ADMIN-KEY"

// AdminAuth rejects requests whose X-ADMIN-KEY does not equal adminKey.
// An empty adminKey rejects every request.
func AdminAuth(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(AdminKeyHeader)
		if adminKey == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(adminKey)) != 1 {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
