package members

import (
	"membership-backend/internal/application/membership"
	"membership-backend/internal/middleware"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the member profile endpoint.
type Handlers struct {
	Service *membership.Service
}

// Me GET /members/me: the member named by X-MEMBER-ID.
func (h *Handlers) Me(c *fiber.Ctx) error {
	m, err := h.Service.GetMember(c.UserContext(), middleware.GetMemberID(c))
	if err != nil {
		return err
	}
	return response.Success(c, m)
}
