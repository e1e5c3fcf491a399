package request

import (
	"errors"

	"membership-backend/internal/pkg/apperror"
	"membership-backend/internal/pkg/pagination"
	"membership-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Body decodes the JSON body into out and validates it.
// A malformed body is reported as a validation error on "body".
func Body(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return apperror.Validation(apperror.FieldError{Field: "body", Message: "must be a valid JSON object"})
		}
	}
	return validation.Struct(out)
}

// Page reads ?page and ?limit.
func Page(c *fiber.Ctx) (pagination.Params, error) {
	p, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		var pe *pagination.ParseError
		if errors.As(err, &pe) {
			return p, apperror.Validation(apperror.FieldError{Field: pe.Field, Message: pe.Message})
		}
		return p, err
	}
	return p, nil
}
