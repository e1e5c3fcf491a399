package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"membership-backend/internal/application/ports"
	"membership-backend/internal/domain"
	"membership-backend/internal/pkg/pagination"
	"membership-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplicationRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &ApplicationRepository{DB: db}
	ctx := context.Background()

	app := &domain.Application{Name: "Ana", Email: "ana@example.com", Motivation: "networking"}
	require.NoError(t, repo.Create(ctx, app))
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, domain.ApplicationPending, app.Status)

	got, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Nil(t, got.Company)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestApplicationRepository_ListAllNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &ApplicationRepository{DB: db}
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		require.NoError(t, db.Create(&domain.Application{
			Name: "App", Email: "a@example.com", Motivation: "hello",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	page, err := repo.ListAll(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), page.Total)
	require.Len(t, page.Items, 10)
	assert.True(t, page.Items[0].CreatedAt.Equal(base.Add(14*time.Hour)))

	page2, err := repo.ListAll(ctx, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)

	page9, err := repo.ListAll(ctx, pagination.Params{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page9.Items)
	assert.Equal(t, int64(15), page9.Total)
}

func TestApplicationRepository_SetStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &ApplicationRepository{DB: db}
	ctx := context.Background()

	app := &domain.Application{Name: "Ana", Email: "ana@example.com", Motivation: "networking"}
	require.NoError(t, repo.Create(ctx, app))
	require.NoError(t, repo.SetStatus(ctx, app.ID, domain.ApplicationRejected))

	got, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, got.Status)

	err = repo.SetStatus(ctx, "missing", domain.ApplicationApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInviteRepository_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	apps := &ApplicationRepository{DB: db}
	repo := &InviteRepository{DB: db}
	ctx := context.Background()

	app := &domain.Application{Name: "Ana", Email: "ana@example.com", Motivation: "networking"}
	require.NoError(t, apps.Create(ctx, app))

	expires := time.Now().Add(7 * 24 * time.Hour).UTC()
	inv, err := repo.CreateForApplication(ctx, app.ID, "tok-1", expires)
	require.NoError(t, err)
	assert.Equal(t, app.ID, inv.ApplicationID)
	assert.Nil(t, inv.UsedAt)

	found, err := repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, inv.ID, found.ID)

	none, err := repo.FindByToken(ctx, "tok-unknown")
	require.NoError(t, err)
	assert.Nil(t, none)

	ok, err := repo.MarkUsed(ctx, inv.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, ok)

	// Second mark is a no-op: the row is already used.
	ok, err = repo.MarkUsed(ctx, inv.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)

	found, err = repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.NotNil(t, found.UsedAt)
}

func TestMemberRepository_Find(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &MemberRepository{DB: db}
	ctx := context.Background()

	company := "Tech Corp"
	m := &domain.Member{Name: "João", Email: "joao@example.com", Company: &company}
	require.NoError(t, repo.Create(ctx, m))
	assert.True(t, m.IsActive)
	assert.False(t, m.JoinedAt.IsZero())

	byID, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Tech Corp", *byID.Company)

	byEmail, err := repo.FindByEmail(ctx, "joao@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, m.ID, byEmail.ID)

	none, err := repo.FindByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)

	dup := &domain.Member{Name: "Dup", Email: "joao@example.com"}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestReferralRepository_ListForMember(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &ReferralRepository{DB: db}
	ctx := context.Background()

	m1 := testutil.Member(t, db, "M1", "m1@example.com")
	m2 := testutil.Member(t, db, "M2", "m2@example.com")
	m3 := testutil.Member(t, db, "M3", "m3@example.com")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		testutil.Referral(t, db, m1.ID, m2.ID, base.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 3; i++ {
		testutil.Referral(t, db, m3.ID, m1.ID, base.Add(time.Duration(i)*time.Hour))
	}

	got, err := repo.ListForMember(ctx, m1.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Mine.Total)
	require.Len(t, got.Mine.Items, 10)
	assert.Equal(t, int64(3), got.ToMe.Total)
	require.Len(t, got.ToMe.Items, 3)

	assertNewestFirst(t, got.Mine.Items)
	assertNewestFirst(t, got.ToMe.Items)
	for _, r := range got.Mine.Items {
		assert.Equal(t, m1.ID, r.FromMemberID)
	}
	for _, r := range got.ToMe.Items {
		assert.Equal(t, m1.ID, r.ToMemberID)
	}

	// Page 2 still has mine left over; toMe is past its end.
	got, err = repo.ListForMember(ctx, m1.ID, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got.Mine.Items, 2)
	assert.Empty(t, got.ToMe.Items)
	assert.NotNil(t, got.ToMe.Items)
}

func assertNewestFirst(t *testing.T, items []domain.Referral) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "index %d out of order", i)
	}
}

func TestReferralRepository_UpdateStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := &ReferralRepository{DB: db}
	ctx := context.Background()

	a := testutil.Member(t, db, "A", "a@example.com")
	b := testutil.Member(t, db, "B", "b@example.com")
	ref := &domain.Referral{FromMemberID: a.ID, ToMemberID: b.ID, CompanyOrContact: "Acme", Description: "x"}
	require.NoError(t, repo.Create(ctx, ref))
	assert.Equal(t, domain.ReferralNew, ref.Status)

	require.NoError(t, repo.UpdateStatus(ctx, ref.ID, domain.ReferralClosed))
	var got domain.Referral
	require.NoError(t, db.First(&got, "id = ?", ref.ID).Error)
	assert.Equal(t, domain.ReferralClosed, got.Status)

	// Self-transition is allowed.
	require.NoError(t, repo.UpdateStatus(ctx, ref.ID, domain.ReferralClosed))

	err := repo.UpdateStatus(ctx, "missing", domain.ReferralNew)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormStore_WithinTxRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewGormStore(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(repos ports.Repositories) error {
		if err := repos.Members.Create(ctx, &domain.Member{Name: "Tx", Email: "tx@example.com"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	m, err := store.Repositories().Members.FindByEmail(ctx, "tx@example.com")
	require.NoError(t, err)
	assert.Nil(t, m)
}
