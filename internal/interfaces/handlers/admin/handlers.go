package admin

import (
	"membership-backend/internal/application/membership"
	"membership-backend/internal/pkg/request"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for /admin/applications. Routes are expected
// to sit behind middleware.AdminAuth.
type Handlers struct {
	Service *membership.Service
}

// List GET /admin/applications?page&limit
func (h *Handlers) List(c *fiber.Ctx) error {
	p, err := request.Page(c)
	if err != nil {
		return err
	}
	page, err := h.Service.ListApplications(c.UserContext(), p)
	if err != nil {
		return err
	}
	return response.Paginated(c, page.Items, p.MetaFor(page.Total))
}

// Approve POST /admin/applications/:id/approve: returns the invite link instead of emailing it.
func (h *Handlers) Approve(c *fiber.Ctx) error {
	invite, err := h.Service.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"message": "Approved", "invite": invite})
}

// Reject POST /admin/applications/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	if err := h.Service.Reject(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"message": "Rejected"})
}
