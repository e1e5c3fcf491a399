package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a registered participant. Members are only created by redeeming an invite.
type Member struct {
	ID       string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	Email    string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Company  *string   `gorm:"column:company" json:"company"`
	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime" json:"joinedAt"`
	IsActive bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

func (Member) TableName() string {
	return "members"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
