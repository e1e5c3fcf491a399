package applications

import (
	"membership-backend/internal/application/membership"
	"membership-backend/internal/pkg/request"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for the public application endpoint.
type Handlers struct {
	Service *membership.Service
}

// ApplyRequest body.
type ApplyRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Email      string  `json:"email" validate:"required,email"`
	Company    *string `json:"company"`
	Motivation string  `json:"motivation" validate:"required,min=5"`
}

// Apply POST /applications: record a PENDING application.
func (h *Handlers) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := request.Body(c, &req); err != nil {
		return err
	}
	app, err := h.Service.Apply(c.UserContext(), membership.ApplyInput{
		Name:       req.Name,
		Email:      req.Email,
		Company:    req.Company,
		Motivation: req.Motivation,
	})
	if err != nil {
		return err
	}
	return response.Created(c, app)
}
