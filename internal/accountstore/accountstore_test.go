package accountstore

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

func newTestStore(t *testing.T) *accountstore {
	t.Helper()
	store, err := New(path.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestAccount(email string) *model.Account {
	now := time.Now().UTC()
	verificationToken := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	return &model.Account{
		ID:                model.AccountID(model.CreateID()),
		CreatedAt:         now,
		UpdatedAt:         now,
		Email:             email,
		Password:          "not-a-real-hash",
		Role:              "user",
		VerificationToken: &verificationToken,
		Profile:           model.Profile{FullName: "Test User", IsPublic: true},
		Skills:            model.Skills{Offered: []model.OfferedSkill{}, Wanted: []model.WantedSkill{}},
		Availability:      model.Availability{IsAvailable: true, LastUpdated: now},
		Preferences:       model.DefaultPreferences(),
	}
}

func TestCreateAndFetch(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := newTestStore(t)

	account := newTestAccount("testuser@testdomain.com")
	assert.Nil(store.Create(ctx, account))

	t.Run("by id", func(t *testing.T) {
		fetched, err := store.FetchByID(ctx, account.ID)
		assert.Nil(err)
		assert.Equal(account.Email, fetched.Email)
		assert.Equal("Test User", fetched.Profile.FullName)
		assert.Equal(50, fetched.Preferences.MaxDistance)
	})

	t.Run("by email", func(t *testing.T) {
		fetched, err := store.FetchByEmail(ctx, "testuser@testdomain.com")
		assert.Nil(err)
		assert.Equal(account.ID, fetched.ID)
	})

	t.Run("by verification token", func(t *testing.T) {
		fetched, err := store.FetchByVerificationToken(ctx, *account.VerificationToken)
		assert.Nil(err)
		assert.Equal(account.ID, fetched.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.FetchByID(ctx, "nope")
		assert.ErrorIs(err, model.ErrorAccountNotFound)
	})
}

func TestDuplicateEmail(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := newTestStore(t)

	assert.Nil(store.Create(ctx, newTestAccount("dupe@testdomain.com")))
	err := store.Create(ctx, newTestAccount("dupe@testdomain.com"))
	assert.ErrorIs(err, model.ErrorEmailTaken)
}

func TestUpdate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := newTestStore(t)

	account := newTestAccount("update@testdomain.com")
	assert.Nil(store.Create(ctx, account))

	account.Verified = true
	account.VerificationToken = nil
	account.FailedAttempts = 3
	account.Skills.Offered = append(account.Skills.Offered, model.OfferedSkill{
		ID:       model.CreateID(),
		Name:     "Woodworking",
		Category: "Crafts",
		IsActive: true,
	})
	assert.Nil(store.Update(ctx, account))

	fetched, err := store.FetchByID(ctx, account.ID)
	assert.Nil(err)
	assert.True(fetched.Verified)
	assert.Nil(fetched.VerificationToken)
	assert.Equal(3, fetched.FailedAttempts)
	assert.Len(fetched.Skills.Offered, 1)
	assert.Equal("Woodworking", fetched.Skills.Offered[0].Name)

	t.Run("unknown account", func(t *testing.T) {
		ghost := newTestAccount("ghost@testdomain.com")
		assert.ErrorIs(store.Update(ctx, ghost), model.ErrorAccountNotFound)
	})
}

func TestFetchByResetToken(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := newTestStore(t)

	account := newTestAccount("reset@testdomain.com")
	resetToken := "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
	expiry := time.Now().UTC().Add(time.Hour)
	account.ResetToken = &resetToken
	account.ResetExpiry = &expiry
	assert.Nil(store.Create(ctx, account))

	t.Run("unexpired", func(t *testing.T) {
		fetched, err := store.FetchByResetToken(ctx, resetToken, time.Now().UTC())
		assert.Nil(err)
		assert.Equal(account.ID, fetched.ID)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := store.FetchByResetToken(ctx, resetToken, time.Now().UTC().Add(2*time.Hour))
		assert.ErrorIs(err, model.ErrorAccountNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := store.FetchByResetToken(ctx, "bogus", time.Now().UTC())
		assert.ErrorIs(err, model.ErrorAccountNotFound)
	})
}
