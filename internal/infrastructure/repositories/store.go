package repositories

import (
	"context"

	"membership-backend/internal/application/ports"

	"gorm.io/gorm"
)

// GormStore binds the GORM repositories to an injected connection pool.
type GormStore struct {
	db *gorm.DB
}

var _ ports.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Repositories() ports.Repositories {
	return bind(s.db)
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(repos ports.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func bind(db *gorm.DB) ports.Repositories {
	return ports.Repositories{
		Applications: &ApplicationRepository{DB: db},
		Invites:      &InviteRepository{DB: db},
		Members:      &MemberRepository{DB: db},
		Referrals:    &ReferralRepository{DB: db},
	}
}
