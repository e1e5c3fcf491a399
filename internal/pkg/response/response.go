package response

import (
	"membership-backend/internal/pkg/apperror"
	"membership-backend/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// Body is the standardized success JSON shape.
type Body struct {
	Data interface{} `json:"data"`
	Meta interface{} `json:"meta,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Success sends 200 with {data}.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Body{Data: data})
}

// Created sends 201 with {data}.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Body{Data: data})
}

// Paginated sends 200 with {data, meta}. A nil items slice is sent as [].
func Paginated[T any](c *fiber.Ctx, items []T, meta pagination.Meta) error {
	if items == nil {
		items = []T{}
	}
	return c.Status(fiber.StatusOK).JSON(Body{Data: items, Meta: meta})
}

// Error sends {error, details?} with the given status.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message, Details: details})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// FromError writes a classified error. Validation details are included when present.
func FromError(c *fiber.Ctx, err error) error {
	code := apperror.StatusCode(err)
	if e, ok := apperror.As(err); ok {
		if len(e.Details) > 0 {
			return Error(c, e.Message, code, e.Details)
		}
		if e.Kind != apperror.KindInternal {
			return Error(c, e.Message, code, nil)
		}
	}
	return Error(c, err.Error(), code, nil)
}
