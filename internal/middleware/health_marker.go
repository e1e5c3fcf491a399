package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	apphealth "membership-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// HealthMarker records request stats in Redis (skip /health*, /metrics, favicon).
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/health") || path == "/metrics" || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		b, _ := json.Marshal(lastReq)
		ctx := context.Background()
		_, _ = rdb.Set(ctx, apphealth.KeyLastReq, b, 0).Result()
		_, _ = rdb.Incr(ctx, apphealth.KeyReqTotal).Result()

		err := c.Next()

		ms := time.Since(start).Milliseconds()
		_, _ = rdb.Incr(ctx, apphealth.KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, apphealth.KeyResTime, float64(ms)).Result()
		if statusOf(c, err) >= fiber.StatusInternalServerError {
			_, _ = rdb.Incr(ctx, apphealth.KeyReqErrors).Result()
		}
		return err
	}
}
