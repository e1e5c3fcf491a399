package repositories

import (
	"context"
	"errors"
	"fmt"

	"membership-backend/internal/domain"
	"membership-backend/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ApplicationRepository is the GORM implementation of ports.ApplicationRepository.
type ApplicationRepository struct {
	DB *gorm.DB
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	app.Status = domain.ApplicationPending
	return r.DB.WithContext(ctx).Create(app).Error
}

func (r *ApplicationRepository) ListAll(ctx context.Context, p pagination.Params) (pagination.Page[domain.Application], error) {
	p = p.Normalize()
	var page pagination.Page[domain.Application]

	if err := r.DB.WithContext(ctx).Model(&domain.Application{}).Count(&page.Total).Error; err != nil {
		return page, err
	}
	offset, ok := p.Offset()
	if !ok {
		page.Items = []domain.Application{}
		return page, nil
	}
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(p.Limit).
		Find(&page.Items).Error; err != nil {
		return page, err
	}
	return page, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// SetStatus fails with a wrapped gorm.ErrRecordNotFound when no row matches.
func (r *ApplicationRepository) SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	res := r.DB.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update application %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
