package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

const publicProfileTTL = 5 * time.Minute

type Store interface {
	FetchByID(ctx context.Context, id model.AccountID) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
}

type MediaStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (url string, objectKey string, err error)
	Delete(ctx context.Context, objectKey string) error
}

type service struct {
	store Store
	media MediaStore
	cache *redis.Client
}

// New wires the user service. The cache client may be nil, in which case
// public profiles are always read through to the store.
func New(store Store, media MediaStore, cache *redis.Client) *service {
	return &service{
		store: store,
		media: media,
		cache: cache,
	}
}

func (s *service) Profile(ctx context.Context, id model.AccountID) (*model.Account, error) {
	return s.store.FetchByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id model.AccountID, params *model.UpdateProfileParams) (*model.Account, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		account.Profile.FullName = *params.FullName
	}
	if params.Bio != nil {
		account.Profile.Bio = *params.Bio
	}
	if params.City != nil {
		account.Profile.City = *params.City
	}
	if params.Country != nil {
		account.Profile.Country = *params.Country
	}
	if params.Timezone != nil {
		account.Profile.Timezone = *params.Timezone
	}
	if params.Languages != nil {
		account.Profile.Languages = params.Languages
	}
	if params.IsPublic != nil {
		account.Profile.IsPublic = *params.IsPublic
	}
	if params.Preferences != nil {
		account.Preferences = *params.Preferences
	}

	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return account, nil
}

// PublicProfile serves the cached public view when one exists. Private
// profiles are indistinguishable from missing ones.
func (s *service) PublicProfile(ctx context.Context, id model.AccountID) (*model.PublicView, error) {
	if cached := s.cachedProfile(ctx, id); cached != nil {
		return cached, nil
	}

	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.Profile.IsPublic {
		return nil, model.ErrorAccountNotFound
	}

	view := account.PublicView()
	s.cacheProfile(ctx, id, &view)

	return &view, nil
}

func (s *service) SetPhoto(ctx context.Context, id model.AccountID, data []byte, contentType string) (*model.Account, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.Profile.Photo != nil {
		if err := s.media.Delete(ctx, account.Profile.Photo.ObjectKey); err != nil {
			log.Errorf("deleting previous photo for %s: %+v", id, err)
		}
	}

	url, objectKey, err := s.media.Upload(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("uploading photo: %w", err)
	}

	account.Profile.Photo = &model.Photo{
		URL:        url,
		ObjectKey:  objectKey,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return account, nil
}

func (s *service) RemovePhoto(ctx context.Context, id model.AccountID) (*model.Account, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.Profile.Photo != nil {
		if err := s.media.Delete(ctx, account.Profile.Photo.ObjectKey); err != nil {
			log.Errorf("deleting photo for %s: %+v", id, err)
		}
	}

	account.Profile.Photo = nil
	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return account, nil
}

func (s *service) OfferedSkills(ctx context.Context, id model.AccountID) ([]model.OfferedSkill, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.Skills.Offered, nil
}

func (s *service) AddOfferedSkill(ctx context.Context, id model.AccountID, params *model.OfferedSkillParams) (*model.OfferedSkill, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skill := model.OfferedSkill{
		ID:          model.CreateID(),
		Name:        params.Name,
		Category:    params.Category,
		Level:       params.Level,
		Description: params.Description,
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
	account.Skills.Offered = append(account.Skills.Offered, skill)

	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return &skill, nil
}

func (s *service) UpdateOfferedSkill(ctx context.Context, id model.AccountID, skillID string, params *model.OfferedSkillParams) (*model.OfferedSkill, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *model.OfferedSkill
	for i := range account.Skills.Offered {
		if account.Skills.Offered[i].ID == skillID {
			account.Skills.Offered[i].Name = params.Name
			account.Skills.Offered[i].Category = params.Category
			account.Skills.Offered[i].Level = params.Level
			account.Skills.Offered[i].Description = params.Description
			updated = &account.Skills.Offered[i]
			break
		}
	}
	if updated == nil {
		return nil, model.ErrorSkillNotFound
	}

	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return updated, nil
}

// DeleteOfferedSkill drops the matching record by filtering the slice.
func (s *service) DeleteOfferedSkill(ctx context.Context, id model.AccountID, skillID string) error {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	kept := account.Skills.Offered[:0]
	found := false
	for _, skill := range account.Skills.Offered {
		if skill.ID == skillID {
			found = true
			continue
		}
		kept = append(kept, skill)
	}
	if !found {
		return model.ErrorSkillNotFound
	}
	account.Skills.Offered = kept

	if err := s.store.Update(ctx, account); err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return nil
}

func (s *service) WantedSkills(ctx context.Context, id model.AccountID) ([]model.WantedSkill, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.Skills.Wanted, nil
}

func (s *service) AddWantedSkill(ctx context.Context, id model.AccountID, params *model.WantedSkillParams) (*model.WantedSkill, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priority := params.Priority
	if priority == "" {
		priority = model.SkillPriorityMedium
	}
	skill := model.WantedSkill{
		ID:          model.CreateID(),
		Name:        params.Name,
		Category:    params.Category,
		Priority:    priority,
		Description: params.Description,
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
	account.Skills.Wanted = append(account.Skills.Wanted, skill)

	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return &skill, nil
}

func (s *service) UpdateWantedSkill(ctx context.Context, id model.AccountID, skillID string, params *model.WantedSkillParams) (*model.WantedSkill, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *model.WantedSkill
	for i := range account.Skills.Wanted {
		if account.Skills.Wanted[i].ID == skillID {
			account.Skills.Wanted[i].Name = params.Name
			account.Skills.Wanted[i].Category = params.Category
			if params.Priority != "" {
				account.Skills.Wanted[i].Priority = params.Priority
			}
			account.Skills.Wanted[i].Description = params.Description
			updated = &account.Skills.Wanted[i]
			break
		}
	}
	if updated == nil {
		return nil, model.ErrorSkillNotFound
	}

	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return updated, nil
}

func (s *service) DeleteWantedSkill(ctx context.Context, id model.AccountID, skillID string) error {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	kept := account.Skills.Wanted[:0]
	found := false
	for _, skill := range account.Skills.Wanted {
		if skill.ID == skillID {
			found = true
			continue
		}
		kept = append(kept, skill)
	}
	if !found {
		return model.ErrorSkillNotFound
	}
	account.Skills.Wanted = kept

	if err := s.store.Update(ctx, account); err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return nil
}

func (s *service) Availability(ctx context.Context, id model.AccountID) (*model.Availability, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &account.Availability, nil
}

func (s *service) UpdateAvailability(ctx context.Context, id model.AccountID, params *model.UpdateAvailabilityParams) (*model.Availability, error) {
	account, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Timezone != nil {
		account.Availability.Timezone = *params.Timezone
	}
	if params.IsAvailable != nil {
		account.Availability.IsAvailable = *params.IsAvailable
	}
	if params.Schedule != nil {
		account.Availability.Schedule = params.Schedule
	}
	if params.BlockedDates != nil {
		dates := make([]time.Time, 0, len(params.BlockedDates))
		for _, raw := range params.BlockedDates {
			date, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, fmt.Errorf("parsing blocked date %q: %w", raw, err)
			}
			dates = append(dates, date)
		}
		account.Availability.BlockedDates = dates
	}
	account.Availability.LastUpdated = time.Now().UTC()

	if err := s.store.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	s.invalidate(ctx, id)

	return &account.Availability, nil
}

func profileKey(id model.AccountID) string {
	return "profile:" + string(id)
}

func (s *service) cachedProfile(ctx context.Context, id model.AccountID) *model.PublicView {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		return nil
	}
	view := &model.PublicView{}
	if err := json.Unmarshal(data, view); err != nil {
		return nil
	}
	return view
}

func (s *service) cacheProfile(ctx context.Context, id model.AccountID, view *model.PublicView) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, profileKey(id), data, publicProfileTTL).Err(); err != nil {
		log.Errorf("caching profile for %s: %+v", id, err)
	}
}

func (s *service) invalidate(ctx context.Context, id model.AccountID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, profileKey(id)).Err(); err != nil {
		log.Errorf("invalidating profile cache for %s: %+v", id, err)
	}
}
