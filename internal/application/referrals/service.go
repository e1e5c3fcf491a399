package referrals

import (
	"context"

	"membership-backend/internal/application/ports"
	"membership-backend/internal/domain"
	"membership-backend/internal/pkg/pagination"
)

// Service manages referrals between members. Member ids are taken as given;
// referential integrity is left to the store, and self-referrals are allowed.
type Service struct {
	Referrals ports.ReferralRepository
}

// CreateInput is a referral sent by FromMemberID.
type CreateInput struct {
	FromMemberID     string
	ToMemberID       string
	CompanyOrContact string
	Description      string
}

// Create records a referral in NEW status.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Referral, error) {
	ref := &domain.Referral{
		FromMemberID:     in.FromMemberID,
		ToMemberID:       in.ToMemberID,
		CompanyOrContact: in.CompanyOrContact,
		Description:      in.Description,
	}
	if err := s.Referrals.Create(ctx, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// ListForMember returns the member's sent ("mine") and received ("toMe") referrals,
// each paged on its own with the shared page and limit.
func (s *Service) ListForMember(ctx context.Context, memberID string, p pagination.Params) (ports.MemberReferrals, error) {
	return s.Referrals.ListForMember(ctx, memberID, p.Normalize())
}

// UpdateStatus writes the new status unconditionally. A missing referral is a store error.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.ReferralStatus) error {
	return s.Referrals.UpdateStatus(ctx, id, status)
}
