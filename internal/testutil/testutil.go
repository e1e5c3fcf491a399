// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"membership-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every pooled connection to :memory: would be a separate database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Clock is a settable ports.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Member inserts a member row directly.
func Member(t *testing.T, db *gorm.DB, name, email string) domain.Member {
	t.Helper()
	m := domain.Member{Name: name, Email: email, IsActive: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// Referral inserts a referral row with an explicit creation time.
func Referral(t *testing.T, db *gorm.DB, from, to string, createdAt time.Time) domain.Referral {
	t.Helper()
	r := domain.Referral{
		FromMemberID:     from,
		ToMemberID:       to,
		CompanyOrContact: "Acme",
		Description:      "intro",
		Status:           domain.ReferralNew,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}
