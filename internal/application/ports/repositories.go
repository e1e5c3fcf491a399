package ports

import (
	"context"
	"time"

	"membership-backend/internal/domain"
	"membership-backend/internal/pkg/pagination"
)

// ApplicationRepository persists membership applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	// ListAll returns one page ordered by creation time, newest first, plus the total count.
	ListAll(ctx context.Context, p pagination.Params) (pagination.Page[domain.Application], error)
	// FindByID returns (nil, nil) when the application does not exist.
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	SetStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
}

// InviteRepository persists invites issued on approval.
type InviteRepository interface {
	CreateForApplication(ctx context.Context, applicationID, token string, expiresAt time.Time) (*domain.Invite, error)
	// FindByToken returns (nil, nil) when no invite carries the token.
	FindByToken(ctx context.Context, token string) (*domain.Invite, error)
	// MarkUsed sets used_at only if it is still unset and reports whether a row changed.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
}

// MemberRepository persists members.
type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) error
	// FindByID and FindByEmail return (nil, nil) when no member matches.
	FindByID(ctx context.Context, id string) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
}

// MemberReferrals holds the two independently paginated sides of a member's referrals.
type MemberReferrals struct {
	Mine pagination.Page[domain.Referral]
	ToMe pagination.Page[domain.Referral]
}

// ReferralRepository persists referrals.
type ReferralRepository interface {
	Create(ctx context.Context, r *domain.Referral) error
	ListForMember(ctx context.Context, memberID string, p pagination.Params) (MemberReferrals, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReferralStatus) error
}

// Repositories is the set of repositories bound to one store handle.
type Repositories struct {
	Applications ApplicationRepository
	Invites      InviteRepository
	Members      MemberRepository
	Referrals    ReferralRepository
}

// Store hands out repositories and runs multi-step sequences atomically.
type Store interface {
	Repositories() Repositories
	// WithinTx runs fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
