package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the decision state of a membership application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application is a membership request submitted by a prospective member.
type Application struct {
	ID         string            `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name       string            `gorm:"column:name;not null" json:"name"`
	Email      string            `gorm:"column:email;not null" json:"email"`
	Company    *string           `gorm:"column:company" json:"company"`
	Motivation string            `gorm:"column:motivation;type:text;not null" json:"motivation"`
	Status     ApplicationStatus `gorm:"column:status;type:varchar(16);not null;default:'PENDING'" json:"status"`
	CreatedAt  time.Time         `gorm:"column:created_at;index" json:"createdAt"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ApplicationPending
	}
	return nil
}
