package referrals

import (
	refsvc "membership-backend/internal/application/referrals"
	"membership-backend/internal/domain"
	"membership-backend/internal/middleware"
	"membership-backend/internal/pkg/pagination"
	"membership-backend/internal/pkg/request"
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds dependencies for /referrals. Routes are expected to sit
// behind middleware.MemberIdentity.
type Handlers struct {
	Service *refsvc.Service
}

// CreateRequest body. The sender is the calling member.
type CreateRequest struct {
	ToMemberID       string `json:"toMemberId" validate:"required,min=1"`
	CompanyOrContact string `json:"companyOrContact" validate:"required,min=1"`
	Description      string `json:"description" validate:"required,min=1"`
}

// UpdateStatusRequest body.
type UpdateStatusRequest struct {
	Status domain.ReferralStatus `json:"status" validate:"required,oneof=NEW IN_CONTACT CLOSED DECLINED"`
}

type listData struct {
	Mine []domain.Referral `json:"mine"`
	ToMe []domain.Referral `json:"toMe"`
}

type listMeta struct {
	Mine pagination.Meta `json:"mine"`
	ToMe pagination.Meta `json:"toMe"`
}

// Create POST /referrals
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := request.Body(c, &req); err != nil {
		return err
	}
	ref, err := h.Service.Create(c.UserContext(), refsvc.CreateInput{
		FromMemberID:     middleware.GetMemberID(c),
		ToMemberID:       req.ToMemberID,
		CompanyOrContact: req.CompanyOrContact,
		Description:      req.Description,
	})
	if err != nil {
		return err
	}
	return response.Created(c, ref)
}

// List GET /referrals?page&limit: sent and received referrals, paged separately.
func (h *Handlers) List(c *fiber.Ctx) error {
	p, err := request.Page(c)
	if err != nil {
		return err
	}
	res, err := h.Service.ListForMember(c.UserContext(), middleware.GetMemberID(c), p)
	if err != nil {
		return err
	}
	data := listData{Mine: res.Mine.Items, ToMe: res.ToMe.Items}
	if data.Mine == nil {
		data.Mine = []domain.Referral{}
	}
	if data.ToMe == nil {
		data.ToMe = []domain.Referral{}
	}
	return c.JSON(response.Body{
		Data: data,
		Meta: listMeta{Mine: p.MetaFor(res.Mine.Total), ToMe: p.MetaFor(res.ToMe.Total)},
	})
}

// UpdateStatus PATCH /referrals/:id
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := request.Body(c, &req); err != nil {
		return err
	}
	id := c.Params("id")
	if err := h.Service.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"id": id, "status": req.Status})
}
