package database

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"membership-backend/internal/application/membership"
	"membership-backend/internal/domain"

	"gorm.io/gorm"
)

// SeedSummary counts the rows inserted by Seed.
type SeedSummary struct {
	Members      int
	Applications int
	Invites      int
	Referrals    int
}

var (
	seedMembers = []struct{ name, email, company string }{
		{"Joan Silver", "joan.silver@example.com", "Tech Corp"},
		{"Mark Santos", "mark.santos@example.com", "Innovation Labs"},
		{"Peter Olsen", "peter.olsen@example.com", "Digital Solutions"},
		{"Anna Coast", "anna.coast@example.com", "StartupHub"},
		{"Carl Ferris", "carl.ferris@example.com", "CloudTech"},
		{"Julia Alder", "julia.alder@example.com", "DataViz"},
		{"Robert Lim", "robert.lim@example.com", "AI Solutions"},
		{"Fiona Rock", "fiona.rock@example.com", "MobileFirst"},
	}
	seedCompanies = []string{
		"TechStart", "InnovateNow", "FutureTech", "CloudNine", "DataDriven",
		"SmartSolutions", "NextGen", "DigitalFirst", "AgileCorp", "ScaleUp",
	}
	seedContacts = []string{
		"Google", "Microsoft", "Amazon", "Apple", "Meta", "Netflix", "Tesla", "Oracle",
		"IBM", "Salesforce", "Adobe", "Intel", "NVIDIA", "Cisco", "VMware",
	}
	seedAppStatuses = []domain.ApplicationStatus{domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected}
)

// Seed wipes every table and loads demo data: 8 members, 30 applications with
// random statuses, invites for up to 5 approved applications, 50 random
// referrals, plus 15 sent by and 12 sent to the first member so both of its
// referral lists span several pages.
func Seed(ctx context.Context, db *gorm.DB, rng *rand.Rand, now time.Time) (SeedSummary, error) {
	var sum SeedSummary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&domain.Referral{}, &domain.Invite{}, &domain.Application{}, &domain.Member{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("wipe %T: %w", model, err)
			}
		}

		members := make([]domain.Member, 0, len(seedMembers))
		for _, s := range seedMembers {
			company := s.company
			m := domain.Member{Name: s.name, Email: s.email, Company: &company, JoinedAt: now, IsActive: true}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("create member: %w", err)
			}
			members = append(members, m)
		}
		sum.Members = len(members)

		var approved []domain.Application
		for i := 1; i <= 30; i++ {
			company := fmt.Sprintf("%s %d", pick(rng, seedCompanies), i)
			a := domain.Application{
				Name:       fmt.Sprintf("Candidate %d", i),
				Email:      fmt.Sprintf("candidate%d@example.com", i),
				Company:    &company,
				Motivation: fmt.Sprintf("Candidate %d: I want to join the community and share my experience in technology.", i),
				Status:     pick(rng, seedAppStatuses),
				CreatedAt:  now.Add(-time.Duration(i) * 24 * time.Hour),
			}
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("create application: %w", err)
			}
			if a.Status == domain.ApplicationApproved {
				approved = append(approved, a)
			}
		}
		sum.Applications = 30

		for _, a := range approved[:min(5, len(approved))] {
			token, err := membership.RandomToken()
			if err != nil {
				return fmt.Errorf("generate invite token: %w", err)
			}
			inv := domain.Invite{ApplicationID: a.ID, Token: token, ExpiresAt: now.Add(7 * 24 * time.Hour)}
			if err := tx.Create(&inv).Error; err != nil {
				return fmt.Errorf("create invite: %w", err)
			}
			sum.Invites++
		}

		create := func(from, to domain.Member, contact, desc string, age time.Duration) error {
			at := now.Add(-age)
			r := domain.Referral{
				FromMemberID:     from.ID,
				ToMemberID:       to.ID,
				CompanyOrContact: contact,
				Description:      desc,
				Status:           pick(rng, domain.ReferralStatuses),
				CreatedAt:        at,
				UpdatedAt:        at,
			}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("create referral: %w", err)
			}
			sum.Referrals++
			return nil
		}

		for i := 1; i <= 50; i++ {
			from := pick(rng, members)
			to := pick(rng, members)
			for to.ID == from.ID {
				to = pick(rng, members)
			}
			contact := pick(rng, seedContacts)
			desc := fmt.Sprintf("Referral %d: software opportunity at %s.", i, contact)
			if err := create(from, to, contact, desc, time.Duration(i)*12*time.Hour); err != nil {
				return err
			}
		}

		focus, others := members[0], members[1:]
		for i := 1; i <= 15; i++ {
			to := pick(rng, others)
			desc := fmt.Sprintf("Test referral %d from %s to %s", i, focus.Name, to.Name)
			if err := create(focus, to, fmt.Sprintf("Test Company %d", i), desc, time.Duration(i)*6*time.Hour); err != nil {
				return err
			}
		}
		for i := 1; i <= 12; i++ {
			from := pick(rng, others)
			desc := fmt.Sprintf("Test referral %d from %s to %s", i, from.Name, focus.Name)
			if err := create(from, focus, fmt.Sprintf("Test Contact %d", i), desc, time.Duration(i)*8*time.Hour); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SeedSummary{}, err
	}
	return sum, nil
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
