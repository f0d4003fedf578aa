package user

import (
	"context"
	"fmt"
	"path"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyesh350/Skill-Swap-Platform/internal/accountstore"
	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

type fakeMediaStore struct {
	uploads int
	deleted []string
}

func (m *fakeMediaStore) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	m.uploads++
	objectKey := fmt.Sprintf("photos/test/%d", m.uploads)
	return "https://media.test/" + objectKey, objectKey, nil
}

func (m *fakeMediaStore) Delete(ctx context.Context, objectKey string) error {
	m.deleted = append(m.deleted, objectKey)
	return nil
}

type fixture struct {
	service *service
	store   Store
	media   *fakeMediaStore
	redis   *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := accountstore.New(path.Join(t.TempDir(), "user_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	media := &fakeMediaStore{}

	return &fixture{
		service: New(store, media, cache),
		store:   store,
		media:   media,
		redis:   mr,
	}
}

func (f *fixture) createAccount(t *testing.T, email string) *model.Account {
	t.Helper()
	now := time.Now().UTC()
	account := &model.Account{
		ID:           model.AccountID(model.CreateID()),
		CreatedAt:    now,
		UpdatedAt:    now,
		Email:        email,
		Password:     "not-a-real-hash",
		Role:         "user",
		Verified:     true,
		Profile:      model.Profile{FullName: "Test User", IsPublic: true},
		Skills:       model.Skills{Offered: []model.OfferedSkill{}, Wanted: []model.WantedSkill{}},
		Availability: model.Availability{IsAvailable: true, LastUpdated: now},
		Preferences:  model.DefaultPreferences(),
	}

	creator, ok := f.store.(interface {
		Create(ctx context.Context, account *model.Account) error
	})
	require.True(t, ok)
	require.NoError(t, creator.Create(context.Background(), account))
	return account
}

func stringPtr(s string) *string { return &s }
func boolPtr(b bool) *bool       { return &b }

func TestUpdateProfile(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	account := f.createAccount(t, "profile@testdomain.com")

	updated, err := f.service.UpdateProfile(ctx, account.ID, &model.UpdateProfileParams{
		FullName: stringPtr("New Name"),
		Bio:      stringPtr("I teach woodworking."),
		City:     stringPtr("Leeds"),
	})
	assert.Nil(err)
	assert.Equal("New Name", updated.Profile.FullName)
	assert.Equal("I teach woodworking.", updated.Profile.Bio)
	assert.Equal("Leeds", updated.Profile.City)

	t.Run("unknown account", func(t *testing.T) {
		_, err := f.service.UpdateProfile(ctx, "nope", &model.UpdateProfileParams{})
		assert.ErrorIs(err, model.ErrorAccountNotFound)
	})
}

func TestPublicProfile(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	account := f.createAccount(t, "public@testdomain.com")

	t.Run("serves and caches the view", func(t *testing.T) {
		view, err := f.service.PublicProfile(ctx, account.ID)
		assert.Nil(err)
		assert.Equal(account.ID, view.ID)
		assert.True(f.redis.Exists(profileKey(account.ID)))
	})

	t.Run("cache hit", func(t *testing.T) {
		view, err := f.service.PublicProfile(ctx, account.ID)
		assert.Nil(err)
		assert.Equal("Test User", view.Profile.FullName)
	})

	t.Run("mutation invalidates the cache", func(t *testing.T) {
		_, err := f.service.UpdateProfile(ctx, account.ID, &model.UpdateProfileParams{
			FullName: stringPtr("Renamed User"),
		})
		assert.Nil(err)
		assert.False(f.redis.Exists(profileKey(account.ID)))

		view, err := f.service.PublicProfile(ctx, account.ID)
		assert.Nil(err)
		assert.Equal("Renamed User", view.Profile.FullName)
	})

	t.Run("private profile is not found", func(t *testing.T) {
		_, err := f.service.UpdateProfile(ctx, account.ID, &model.UpdateProfileParams{
			IsPublic: boolPtr(false),
		})
		require.NoError(t, err)

		_, err = f.service.PublicProfile(ctx, account.ID)
		assert.ErrorIs(err, model.ErrorAccountNotFound)
	})
}

func TestPhotos(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	account := f.createAccount(t, "photo@testdomain.com")

	t.Run("upload", func(t *testing.T) {
		updated, err := f.service.SetPhoto(ctx, account.ID, []byte("fake-jpeg"), "image/jpeg")
		assert.Nil(err)
		assert.NotNil(updated.Profile.Photo)
		assert.Contains(updated.Profile.Photo.URL, "photos/test/1")
	})

	t.Run("replacing deletes the old object", func(t *testing.T) {
		updated, err := f.service.SetPhoto(ctx, account.ID, []byte("fake-png"), "image/png")
		assert.Nil(err)
		assert.Contains(updated.Profile.Photo.URL, "photos/test/2")
		assert.Equal([]string{"photos/test/1"}, f.media.deleted)
	})

	t.Run("remove clears the photo", func(t *testing.T) {
		updated, err := f.service.RemovePhoto(ctx, account.ID)
		assert.Nil(err)
		assert.Nil(updated.Profile.Photo)
		assert.Contains(f.media.deleted, "photos/test/2")
	})
}

func TestOfferedSkills(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	account := f.createAccount(t, "skills@testdomain.com")

	var skillID string

	t.Run("add", func(t *testing.T) {
		skill, err := f.service.AddOfferedSkill(ctx, account.ID, &model.OfferedSkillParams{
			Name:     "Guitar",
			Category: "Music",
			Level:    model.SkillLevelAdvanced,
		})
		assert.Nil(err)
		assert.NotEmpty(skill.ID)
		assert.True(skill.IsActive)
		skillID = skill.ID
	})

	t.Run("list", func(t *testing.T) {
		skills, err := f.service.OfferedSkills(ctx, account.ID)
		assert.Nil(err)
		assert.Len(skills, 1)
		assert.Equal("Guitar", skills[0].Name)
	})

	t.Run("update", func(t *testing.T) {
		skill, err := f.service.UpdateOfferedSkill(ctx, account.ID, skillID, &model.OfferedSkillParams{
			Name:     "Electric Guitar",
			Category: "Music",
			Level:    model.SkillLevelExpert,
		})
		assert.Nil(err)
		assert.Equal("Electric Guitar", skill.Name)
		assert.Equal(model.SkillLevelExpert, skill.Level)
	})

	t.Run("update unknown skill", func(t *testing.T) {
		_, err := f.service.UpdateOfferedSkill(ctx, account.ID, "nope", &model.OfferedSkillParams{
			Name:     "Drums",
			Category: "Music",
		})
		assert.ErrorIs(err, model.ErrorSkillNotFound)
	})

	t.Run("delete filters the record out", func(t *testing.T) {
		other, err := f.service.AddOfferedSkill(ctx, account.ID, &model.OfferedSkillParams{
			Name:     "Baking",
			Category: "Cooking",
		})
		require.NoError(t, err)

		assert.Nil(f.service.DeleteOfferedSkill(ctx, account.ID, skillID))

		skills, err := f.service.OfferedSkills(ctx, account.ID)
		assert.Nil(err)
		assert.Len(skills, 1)
		assert.Equal(other.ID, skills[0].ID)
	})

	t.Run("delete is not idempotent", func(t *testing.T) {
		assert.ErrorIs(f.service.DeleteOfferedSkill(ctx, account.ID, skillID), model.ErrorSkillNotFound)
	})
}

func TestWantedSkills(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	account := f.createAccount(t, "wanted@testdomain.com")

	t.Run("priority defaults to medium", func(t *testing.T) {
		skill, err := f.service.AddWantedSkill(ctx, account.ID, &model.WantedSkillParams{
			Name:     "Spanish",
			Category: "Languages",
		})
		assert.Nil(err)
		assert.Equal(model.SkillPriorityMedium, skill.Priority)
	})

	t.Run("delete", func(t *testing.T) {
		skills, err := f.service.WantedSkills(ctx, account.ID)
		require.NoError(t, err)
		require.Len(t, skills, 1)

		assert.Nil(f.service.DeleteWantedSkill(ctx, account.ID, skills[0].ID))

		skills, err = f.service.WantedSkills(ctx, account.ID)
		assert.Nil(err)
		assert.Empty(skills)
	})
}

func TestAvailability(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)
	account := f.createAccount(t, "avail@testdomain.com")

	before := time.Now().UTC()
	availability, err := f.service.UpdateAvailability(ctx, account.ID, &model.UpdateAvailabilityParams{
		Timezone:    stringPtr("Europe/London"),
		IsAvailable: boolPtr(true),
		Schedule: []model.DaySchedule{
			{Day: "Monday", TimeSlots: []model.TimeSlot{{Start: "18:00", End: "20:00", IsActive: true}}},
		},
		BlockedDates: []string{"2026-12-25"},
	})
	assert.Nil(err)
	assert.Equal("Europe/London", availability.Timezone)
	assert.Len(availability.Schedule, 1)
	assert.Len(availability.BlockedDates, 1)
	assert.False(availability.LastUpdated.Before(before))

	t.Run("bad blocked date", func(t *testing.T) {
		_, err := f.service.UpdateAvailability(ctx, account.ID, &model.UpdateAvailabilityParams{
			BlockedDates: []string{"25/12/2026"},
		})
		assert.NotNil(err)
	})
}
