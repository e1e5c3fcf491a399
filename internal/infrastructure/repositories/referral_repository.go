package repositories

import (
	"context"
	"fmt"

	"membership-backend/internal/application/ports"
	"membership-backend/internal/domain"
	"membership-backend/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ReferralRepository is the GORM implementation of ports.ReferralRepository.
type ReferralRepository struct {
	DB *gorm.DB
}

func (r *ReferralRepository) Create(ctx context.Context, ref *domain.Referral) error {
	ref.Status = domain.ReferralNew
	return r.DB.WithContext(ctx).Create(ref).Error
}

// ListForMember pages the sent and received referrals independently, sharing page and limit.
func (r *ReferralRepository) ListForMember(ctx context.Context, memberID string, p pagination.Params) (ports.MemberReferrals, error) {
	var out ports.MemberReferrals
	var err error
	if out.Mine, err = r.page(ctx, "from_member_id = ?", memberID, p); err != nil {
		return out, err
	}
	if out.ToMe, err = r.page(ctx, "to_member_id = ?", memberID, p); err != nil {
		return out, err
	}
	return out, nil
}

func (r *ReferralRepository) page(ctx context.Context, where string, memberID string, p pagination.Params) (pagination.Page[domain.Referral], error) {
	p = p.Normalize()
	page := pagination.Page[domain.Referral]{Items: []domain.Referral{}}

	if err := r.DB.WithContext(ctx).Model(&domain.Referral{}).Where(where, memberID).Count(&page.Total).Error; err != nil {
		return page, err
	}
	offset, ok := p.Offset()
	if !ok {
		return page, nil
	}
	if err := r.DB.WithContext(ctx).
		Where(where, memberID).
		Order("created_at DESC").
		Offset(offset).
		Limit(p.Limit).
		Find(&page.Items).Error; err != nil {
		return page, err
	}
	return page, nil
}

// UpdateStatus fails with a wrapped gorm.ErrRecordNotFound when no row matches.
func (r *ReferralRepository) UpdateStatus(ctx context.Context, id string, status domain.ReferralStatus) error {
	res := r.DB.WithContext(ctx).Model(&domain.Referral{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update referral %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
