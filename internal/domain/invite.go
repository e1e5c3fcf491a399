package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invite is a single-use, time-limited token issued when an application is approved.
type Invite struct {
	ID            string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Token         string     `gorm:"column:token;not null;uniqueIndex" json:"token"`
	ApplicationID string     `gorm:"column:application_id;type:varchar(36);not null;index" json:"applicationId"`
	ExpiresAt     time.Time  `gorm:"column:expires_at;not null" json:"expiresAt"`
	UsedAt        *time.Time `gorm:"column:used_at" json:"usedAt"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"createdAt"`

	Application *Application `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Invite) TableName() string {
	return "invites"
}

func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Used reports whether the invite has already been redeemed.
func (i *Invite) Used() bool {
	return i.UsedAt != nil
}

// Expired reports whether now is at or past the expiry instant.
func (i *Invite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Redeemable holds iff the invite is unused and now < ExpiresAt.
func (i *Invite) Redeemable(now time.Time) bool {
	return !i.Used() && !i.Expired(now)
}
