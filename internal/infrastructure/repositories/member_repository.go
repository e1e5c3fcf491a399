package repositories

import (
	"context"
	"errors"

	"membership-backend/internal/domain"

	"gorm.io/gorm"
)

// MemberRepository is the GORM implementation of ports.MemberRepository.
type MemberRepository struct {
	DB *gorm.DB
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) error {
	m.IsActive = true
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *MemberRepository) first(ctx context.Context, query string, arg string) (*domain.Member, error) {
	var m domain.Member
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
