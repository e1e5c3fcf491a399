package middleware

import (
	"membership-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	// MemberIDHeader names the calling member. It is trusted as given.
	MemberIDHeader = "X-MEMBER-ID"
	memberIDLocal  = "member_id"
)

// MemberIdentity requires X-MEMBER-ID and exposes it via GetMemberID.
func MemberIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(MemberIDHeader)
		if id == "" {
			return response.Unauthorized(c, "Missing X-MEMBER-ID")
		}
		c.Locals(memberIDLocal, id)
		return c.Next()
	}
}

// GetMemberID returns the member id set by MemberIdentity.
func GetMemberID(c *fiber.Ctx) string {
	if id, ok := c.Locals(memberIDLocal).(string); ok {
		return id
	}
	return ""
}
