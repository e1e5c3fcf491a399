package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralStatus tracks the progress of a referral. Any status may follow any other.
type ReferralStatus string

const (
	ReferralNew       ReferralStatus = "NEW"
	ReferralInContact ReferralStatus = "IN_CONTACT"
	ReferralClosed    ReferralStatus = "CLOSED"
	ReferralDeclined  ReferralStatus = "DECLINED"
)

// ReferralStatuses lists every accepted status value.
var ReferralStatuses = []ReferralStatus{ReferralNew, ReferralInContact, ReferralClosed, ReferralDeclined}

// Valid reports whether s is one of ReferralStatuses.
func (s ReferralStatus) Valid() bool {
	for _, v := range ReferralStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Referral records one member introducing another member to an opportunity or contact.
type Referral struct {
	ID               string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	FromMemberID     string         `gorm:"column:from_member_id;type:varchar(36);not null;index" json:"fromMemberId"`
	ToMemberID       string         `gorm:"column:to_member_id;type:varchar(36);not null;index" json:"toMemberId"`
	CompanyOrContact string         `gorm:"column:company_or_contact;not null" json:"companyOrContact"`
	Description      string         `gorm:"column:description;type:text;not null" json:"description"`
	Status           ReferralStatus `gorm:"column:status;type:varchar(16);not null;default:'NEW'" json:"status"`
	CreatedAt        time.Time      `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"column:updated_at" json:"updatedAt"`

	FromMember *Member `gorm:"foreignKey:FromMemberID;references:ID" json:"-"`
	ToMember   *Member `gorm:"foreignKey:ToMemberID;references:ID" json:"-"`
}

func (Referral) TableName() string {
	return "referrals"
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReferralNew
	}
	return nil
}
