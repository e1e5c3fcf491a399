package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig lists the allowed origins. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

func (cfg CORSConfig) allows(origin string) bool {
	for _, o := range cfg.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// CORS echoes allowed origins and answers preflight requests with 204.
// Requests from other origins are refused with 403.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// No origin (e.g. same-origin or tools): allow
		if origin == "" {
			return c.Next()
		}
		if !cfg.allows(origin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed by CORS"})
		}
		setCORSHeaders(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Vary", "Origin")
	c.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type, "+AdminKeyHeader+", "+MemberIDHeader)
	c.Set("Access-Control-Expose-Headers", traceIDHeader)
}
