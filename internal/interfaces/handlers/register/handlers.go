package register

import (
	"membership-backend/internal/application/membership"
	"membership-backend/internal/pkg/request"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for invite redemption.
type Handlers struct {
	Service *membership.Service
}

// RegisterRequest body. Token may instead come from ?token=.
type RegisterRequest struct {
	Token   string  `json:"token"`
	Name    string  `json:"name" validate:"required,min=2"`
	Email   string  `json:"email" validate:"required,email"`
	Company *string `json:"company"`
}

// Register POST /register?token=...: the body token wins over the query token.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := request.Body(c, &req); err != nil {
		return err
	}
	token := req.Token
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return response.Error(c, "Token is required (provide in body or query string)", fiber.StatusBadRequest, nil)
	}

	member, err := h.Service.Register(c.UserContext(), membership.RegisterInput{
		Token:   token,
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		return err
	}
	return response.Created(c, member)
}
