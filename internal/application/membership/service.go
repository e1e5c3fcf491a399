package membership

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"membership-backend/internal/application/ports"
	"membership-backend/internal/domain"
	"membership-backend/internal/pkg/pagination"

	"github.com/rs/zerolog/log"
)

// DefaultInviteTTL applies when no valid expiration window is configured.
const DefaultInviteTTL = 7 * 24 * time.Hour

// Service runs the application → approval → invite → member lifecycle.
type Service struct {
	Store     ports.Store
	Clock     ports.Clock
	InviteTTL time.Duration
	// NewToken defaults to RandomToken.
	NewToken TokenFunc
}

// ApplyInput is the public application form.
type ApplyInput struct {
	Name       string
	Email      string
	Company    *string
	Motivation string
}

// Apply records a new application in PENDING state.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (*domain.Application, error) {
	app := &domain.Application{
		Name:       in.Name,
		Email:      in.Email,
		Company:    in.Company,
		Motivation: in.Motivation,
	}
	if err := s.Store.Repositories().Applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplications returns one page of applications, newest first.
func (s *Service) ListApplications(ctx context.Context, p pagination.Params) (pagination.Page[domain.Application], error) {
	return s.Store.Repositories().Applications.ListAll(ctx, p)
}

// InviteLink is what an approval hands back in place of sending an email.
type InviteLink struct {
	Token     string `json:"token"`
	InviteURL string `json:"inviteUrl"`
}

// Approve marks the application APPROVED and issues its invite in one transaction.
// Re-approving an already decided application is not rejected; it issues another invite.
func (s *Service) Approve(ctx context.Context, applicationID string) (*InviteLink, error) {
	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate invite token: %w", err)
	}
	expiresAt := s.Clock.Now().Add(s.inviteTTL())

	err = s.Store.WithinTx(ctx, func(repos ports.Repositories) error {
		app, err := repos.Applications.FindByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return ErrApplicationNotFound
		}
		if err := repos.Applications.SetStatus(ctx, applicationID, domain.ApplicationApproved); err != nil {
			return err
		}
		_, err = repos.Invites.CreateForApplication(ctx, applicationID, token, expiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	link := &InviteLink{Token: token, InviteURL: InviteURL(token)}
	log.Info().Str("application_id", applicationID).Str("invite_url", link.InviteURL).Time("expires_at", expiresAt).Msg("Invite issued")
	return link, nil
}

// InviteURL is the redemption path delivered to the applicant.
func InviteURL(token string) string {
	return "/register?token=" + url.QueryEscape(token)
}

// Reject marks the application REJECTED. No invite is touched.
func (s *Service) Reject(ctx context.Context, applicationID string) error {
	repos := s.Store.Repositories()
	app, err := repos.Applications.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	return repos.Applications.SetStatus(ctx, applicationID, domain.ApplicationRejected)
}

// RegisterInput is the member profile submitted with an invite token.
type RegisterInput struct {
	Token   string
	Name    string
	Email   string
	Company *string
}

// Register redeems an invite and creates the member. The lookup, member
// insert and used_at write share one transaction; the used_at write is
// conditional, so a concurrent redemption of the same token rolls back.
// The email is not compared with the original application's email.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Member, error) {
	var member *domain.Member
	err := s.Store.WithinTx(ctx, func(repos ports.Repositories) error {
		inv, err := repos.Invites.FindByToken(ctx, in.Token)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInviteInvalid
		}
		now := s.Clock.Now()
		if inv.Used() {
			return ErrInviteUsed
		}
		if inv.Expired(now) {
			return ErrInviteExpired
		}

		existing, err := repos.Members.FindByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrMemberEmailTaken
		}

		m := &domain.Member{
			Name:     in.Name,
			Email:    in.Email,
			Company:  in.Company,
			JoinedAt: now,
		}
		if err := repos.Members.Create(ctx, m); err != nil {
			return err
		}

		marked, err := repos.Invites.MarkUsed(ctx, inv.ID, now)
		if err != nil {
			return err
		}
		if !marked {
			return ErrInviteUsed
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("member_id", member.ID).Msg("Member registered")
	return member, nil
}

// GetMember returns the member with the given id.
func (s *Service) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	m, err := s.Store.Repositories().Members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *Service) newToken() (string, error) {
	if s.NewToken != nil {
		return s.NewToken()
	}
	return RandomToken()
}

func (s *Service) inviteTTL() time.Duration {
	if s.InviteTTL <= 0 {
		return DefaultInviteTTL
	}
	return s.InviteTTL
}
