package middleware

import (
	"context"
	"errors"
	"time"

	apphealth "membership-backend/internal/application/health"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Classified errors keep their
// status; *fiber.Error (unknown route, bad method) keeps its code; anything
// else is a 500 carrying the error's message. 5xx responses are logged and,
// when rdb is set, appended to the Redis error log.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				record(c, rdb, fe.Code, fe.Message)
			}
			return response.Error(c, fe.Message, fe.Code, nil)
		}

		if werr := response.FromError(c, err); werr != nil {
			return werr
		}
		if code := c.Response().StatusCode(); code >= fiber.StatusInternalServerError {
			record(c, rdb, code, err.Error())
		}
		return nil
	}
}

func record(c *fiber.Ctx, rdb *redis.Client, code int, message string) {
	traceID := GetTraceID(c)
	log.Error().Str("trace_id", traceID).Str("method", c.Method()).Str("path", c.Path()).
		Int("status", code).Msg(message)
	if rdb == nil {
		return
	}
	entry := apphealth.ErrorEntry{
		Time:    time.Now().UTC(),
		Method:  c.Method(),
		Path:    c.OriginalURL(),
		Status:  code,
		Message: message,
		TraceID: traceID,
	}
	if err := apphealth.RecordError(context.Background(), rdb, entry); err != nil {
		log.Warn().Err(err).Msg("error log write failed")
	}
}
