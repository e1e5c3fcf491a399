package repositories

import (
	"context"
	"errors"
	"time"

	"membership-backend/internal/domain"

	"gorm.io/gorm"
)

// InviteRepository is the GORM implementation of ports.InviteRepository.
type InviteRepository struct {
	DB *gorm.DB
}

func (r *InviteRepository) CreateForApplication(ctx context.Context, applicationID, token string, expiresAt time.Time) (*domain.Invite, error) {
	inv := &domain.Invite{
		ApplicationID: applicationID,
		Token:         token,
		ExpiresAt:     expiresAt,
	}
	if err := r.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InviteRepository) FindByToken(ctx context.Context, token string) (*domain.Invite, error) {
	var inv domain.Invite
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// MarkUsed only touches an invite whose used_at is still null, so two
// concurrent redemptions cannot both succeed.
func (r *InviteRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&domain.Invite{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
