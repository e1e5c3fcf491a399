package membership

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"membership-backend/internal/application/ports"
	"membership-backend/internal/domain"
	"membership-backend/internal/infrastructure/repositories"
	"membership-backend/internal/pkg/apperror"
	"membership-backend/internal/pkg/pagination"
	"membership-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func setupMembershipTest(t *testing.T) (*Service, *gorm.DB, *testutil.Clock) {
	db := testutil.NewDB(t)
	clk := testutil.NewClock(t0)
	svc := &Service{
		Store:     repositories.NewGormStore(db),
		Clock:     clk,
		InviteTTL: 7 * 24 * time.Hour,
	}
	return svc, db, clk
}

func apply(t *testing.T, svc *Service) *domain.Application {
	t.Helper()
	app, err := svc.Apply(context.Background(), ApplyInput{
		Name: "Ana Costa", Email: "ana@example.com", Motivation: "I want to join",
	})
	require.NoError(t, err)
	return app
}

func TestApply_StartsPending(t *testing.T) {
	svc, _, _ := setupMembershipTest(t)
	company := "StartupHub"
	app, err := svc.Apply(context.Background(), ApplyInput{
		Name: "Ana Costa", Email: "ana@example.com", Company: &company, Motivation: "I want to join",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "StartupHub", *app.Company)

	// Duplicate emails are accepted.
	_, err = svc.Apply(context.Background(), ApplyInput{Name: "Ana", Email: "ana@example.com", Motivation: "again!"})
	require.NoError(t, err)

	page, err := svc.ListApplications(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestApprove_IssuesSingleInvite(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	app := apply(t, svc)

	link, err := svc.Approve(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Len(t, link.Token, 32)
	assert.Equal(t, "/register?token="+link.Token, link.InviteURL)

	var stored domain.Application
	require.NoError(t, db.First(&stored, "id = ?", app.ID).Error)
	assert.Equal(t, domain.ApplicationApproved, stored.Status)

	var invites []domain.Invite
	require.NoError(t, db.Where("application_id = ?", app.ID).Find(&invites).Error)
	require.Len(t, invites, 1)
	assert.Equal(t, link.Token, invites[0].Token)
	assert.Nil(t, invites[0].UsedAt)
	assert.True(t, invites[0].ExpiresAt.Equal(t0.Add(7*24*time.Hour)))
}

func TestApprove_TokensAreFresh(t *testing.T) {
	svc, _, _ := setupMembershipTest(t)
	a := apply(t, svc)
	b := apply(t, svc)

	l1, err := svc.Approve(context.Background(), a.ID)
	require.NoError(t, err)
	l2, err := svc.Approve(context.Background(), b.ID)
	require.NoError(t, err)
	assert.NotEqual(t, l1.Token, l2.Token)
}

func TestApprove_NotFound(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	_, err := svc.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
	assert.Equal(t, 404, apperror.StatusCode(err))

	var count int64
	require.NoError(t, db.Model(&domain.Invite{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApprove_RollsBackOnInviteFailure(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	a := apply(t, svc)
	b := apply(t, svc)

	svc.NewToken = func() (string, error) { return "fixed-token", nil }
	_, err := svc.Approve(context.Background(), a.ID)
	require.NoError(t, err)

	// Same token again violates the unique index; b's status change must not stick.
	_, err = svc.Approve(context.Background(), b.ID)
	require.Error(t, err)

	var stored domain.Application
	require.NoError(t, db.First(&stored, "id = ?", b.ID).Error)
	assert.Equal(t, domain.ApplicationPending, stored.Status)
}

func TestApprove_TokenGeneratorFailure(t *testing.T) {
	svc, _, _ := setupMembershipTest(t)
	app := apply(t, svc)
	svc.NewToken = func() (string, error) { return "", errors.New("entropy exhausted") }

	_, err := svc.Approve(context.Background(), app.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestReject(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	app := apply(t, svc)

	require.NoError(t, svc.Reject(context.Background(), app.ID))
	var stored domain.Application
	require.NoError(t, db.First(&stored, "id = ?", app.ID).Error)
	assert.Equal(t, domain.ApplicationRejected, stored.Status)

	var count int64
	require.NoError(t, db.Model(&domain.Invite{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Reject(context.Background(), "missing"), ErrApplicationNotFound)
}

func approvedToken(t *testing.T, svc *Service) string {
	t.Helper()
	app := apply(t, svc)
	link, err := svc.Approve(context.Background(), app.ID)
	require.NoError(t, err)
	return link.Token
}

func TestRegister_ValidInvite(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	token := approvedToken(t, svc)

	m, err := svc.Register(context.Background(), RegisterInput{Token: token, Name: "Ana Costa", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.True(t, m.IsActive)
	assert.True(t, m.JoinedAt.Equal(t0))

	var inv domain.Invite
	require.NoError(t, db.First(&inv, "token = ?", token).Error)
	require.NotNil(t, inv.UsedAt)
	assert.True(t, inv.UsedAt.Equal(t0))

	// Second redemption fails and creates nothing.
	_, err = svc.Register(context.Background(), RegisterInput{Token: token, Name: "Other", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrInviteUsed)
	assert.Equal(t, "Invite already used", err.Error())

	var count int64
	require.NoError(t, db.Model(&domain.Member{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// raceLostInvites behaves as if another request redeemed the invite between
// the lookup and the used_at write.
type raceLostInvites struct {
	ports.InviteRepository
}

func (raceLostInvites) MarkUsed(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

type raceLostStore struct {
	ports.Store
}

func (s raceLostStore) WithinTx(ctx context.Context, fn func(repos ports.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(repos ports.Repositories) error {
		repos.Invites = raceLostInvites{repos.Invites}
		return fn(repos)
	})
}

func TestRegister_ConcurrentRedemptionRollsBack(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	token := approvedToken(t, svc)
	svc.Store = raceLostStore{svc.Store}

	_, err := svc.Register(context.Background(), RegisterInput{Token: token, Name: "Ana Costa", Email: "ana@example.com"})
	assert.True(t, errors.Is(err, ErrInviteUsed))
	assert.Equal(t, 400, apperror.StatusCode(err))

	var count int64
	require.NoError(t, db.Model(&domain.Member{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegister_InvalidToken(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	_, err := svc.Register(context.Background(), RegisterInput{Token: "nope", Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrInviteInvalid)
	assert.Equal(t, 400, apperror.StatusCode(err))

	var count int64
	require.NoError(t, db.Model(&domain.Member{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegister_Expired(t *testing.T) {
	svc, db, clk := setupMembershipTest(t)
	token := approvedToken(t, svc)

	clk.Advance(7 * 24 * time.Hour)
	_, err := svc.Register(context.Background(), RegisterInput{Token: token, Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrInviteExpired)

	var inv domain.Invite
	require.NoError(t, db.First(&inv, "token = ?", token).Error)
	assert.Nil(t, inv.UsedAt)
}

func TestRegister_JustBeforeExpiry(t *testing.T) {
	svc, _, clk := setupMembershipTest(t)
	token := approvedToken(t, svc)

	clk.Advance(7*24*time.Hour - time.Second)
	_, err := svc.Register(context.Background(), RegisterInput{Token: token, Name: "Ana", Email: "ana@example.com"})
	assert.NoError(t, err)
}

func TestRegister_EmailTakenKeepsInvite(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	testutil.Member(t, db, "Existing", "taken@example.com")
	token := approvedToken(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{Token: token, Name: "Ana", Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrMemberEmailTaken)
	assert.Equal(t, 409, apperror.StatusCode(err))

	// The invite stays redeemable.
	_, err = svc.Register(context.Background(), RegisterInput{Token: token, Name: "Ana", Email: "ana@example.com"})
	assert.NoError(t, err)
}

func TestRegister_EmailNeedNotMatchApplication(t *testing.T) {
	svc, _, _ := setupMembershipTest(t)
	token := approvedToken(t, svc)

	m, err := svc.Register(context.Background(), RegisterInput{Token: token, Name: "Delegate", Email: "delegate@example.com"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.Email, "delegate"))
}

func TestGetMember(t *testing.T) {
	svc, db, _ := setupMembershipTest(t)
	m := testutil.Member(t, db, "João", "joao@example.com")

	got, err := svc.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "João", got.Name)

	_, err = svc.GetMember(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
