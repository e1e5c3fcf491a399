package health

import (
	healthsvc "membership-backend/internal/application/health"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints. Rdb may be nil.
type Handlers struct {
	Rdb *redis.Client
	DB  healthsvc.DBPinger
}

// Status GET /health: liveness only.
func (h *Handlers) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// JSON returns the full health report (runtime, traffic, dependencies).
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":      "membership-backend",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the last logged 5xx errors, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return response.Success(c, []healthsvc.ErrorEntry{})
	}
	entries, err := healthsvc.RecentErrors(c.UserContext(), h.Rdb)
	if err != nil {
		return err
	}
	return response.Success(c, entries)
}

// Reset clears the request stats.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable, nil)
	}
	if err := healthsvc.Reset(c.UserContext(), h.Rdb); err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"success": true})
}
