package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "moolah/internal/errors"
	"moolah/internal/identity"
	"moolah/internal/logger"
	"moolah/internal/models"
	"moolah/internal/validator"
)

// userService handles user-profile business logic. Profile writes are
// mirrored to the identity provider best-effort: a sync failure is logged
// and never fails the primary operation.
type userService struct {
	db     *gorm.DB
	syncer identity.Syncer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, syncer identity.Syncer) UserServicer {
	return &userService{db: db, syncer: syncer}
}

// GetSelf returns the caller's own profile.
func (s *userService) GetSelf(uid string) (*models.User, error) {
	return s.fetch(uid)
}

// UpsertSelf creates or updates the caller's profile with the whitelisted
// self-service fields. The email always follows the verified credential,
// never the request body.
func (s *userService) UpsertSelf(uid, email string, p SelfPatch) (*models.User, error) {
	updates, err := selfUpdates(p)
	if err != nil {
		return nil, err
	}
	if email != "" {
		updates["email"] = email
	}

	var user models.User
	err = s.db.Where("uid = ?", uid).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			UID:      uid,
			Email:    email,
			Currency: "EUR",
			Status:   models.UserStatusActive,
		}
		applyUserUpdates(&user, updates)
		if err := s.db.Create(&user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		if len(updates) > 0 {
			if err := s.db.Model(&user).Updates(updates).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}

	s.syncProfile(uid, updates)
	return s.fetch(uid)
}

// UpdateSelf applies a partial update to the caller's own profile.
func (s *userService) UpdateSelf(uid string, p SelfPatch) (*models.User, error) {
	user, err := s.fetch(uid)
	if err != nil {
		return nil, err
	}

	updates, err := selfUpdates(p)
	if err != nil {
		return nil, err
	}

	// An empty patch still refreshes the update timestamp.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.syncProfile(uid, updates)

	return s.fetch(uid)
}

// AdminGet returns any user's profile.
func (s *userService) AdminGet(uid string) (*models.User, error) {
	return s.fetch(uid)
}

// AdminUpdate applies a partial update to any user, including the
// admin-managed roles and status fields.
func (s *userService) AdminUpdate(uid string, p AdminUserPatch) (*models.User, error) {
	user, err := s.fetch(uid)
	if err != nil {
		return nil, err
	}

	updates, err := selfUpdates(p.SelfPatch)
	if err != nil {
		return nil, err
	}

	if p.Roles.Present() {
		roles, ok := p.Roles.Value()
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "roles must be an array")
		}
		// Map updates bypass the column serializer, so encode the slice here.
		encoded, err := json.Marshal(roles)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["roles"] = string(encoded)
	}

	var newStatus *models.UserStatus
	if p.Status.Present() {
		status, _ := p.Status.Value()
		switch status {
		case models.UserStatusActive, models.UserStatusDisabled, models.UserStatusDeleted:
			updates["status"] = status
			newStatus = &status
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be active, disabled, or deleted")
		}
	}

	// An empty patch still refreshes the update timestamp.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.syncProfile(uid, updates)
	if newStatus != nil {
		if err := s.syncer.SetDisabled(context.Background(), uid, *newStatus != models.UserStatusActive); err != nil {
			logger.Get().Warnw("identity sync failed", "op", "set_disabled", "uid", uid, "error", err.Error())
		}
	}

	return s.fetch(uid)
}

// AdminDelete removes a user. The default is a soft delete (status set to
// deleted and sign-in disabled at the provider); hard removes the row and
// the provider account.
func (s *userService) AdminDelete(uid string, hard bool) error {
	user, err := s.fetch(uid)
	if err != nil {
		return err
	}

	if hard {
		if err := s.db.Unscoped().Delete(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.syncer.Delete(context.Background(), uid); err != nil {
			logger.Get().Warnw("identity sync failed", "op", "delete", "uid", uid, "error", err.Error())
		}
		return nil
	}

	if err := s.db.Model(user).Update("status", models.UserStatusDeleted).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.syncer.SetDisabled(context.Background(), uid, true); err != nil {
		logger.Get().Warnw("identity sync failed", "op", "set_disabled", "uid", uid, "error", err.Error())
	}
	return nil
}

// fetch loads a profile by uid.
func (s *userService) fetch(uid string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// selfUpdates converts the whitelisted patch fields into a column map.
func selfUpdates(p SelfPatch) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if p.DisplayName.Present() {
		displayName, _ := p.DisplayName.Value()
		updates["display_name"] = strings.TrimSpace(displayName)
	}
	if p.PhotoURL.Present() {
		photoURL, _ := p.PhotoURL.Value()
		updates["photo_url"] = photoURL
	}
	if p.Locale.Present() {
		locale, _ := p.Locale.Value()
		updates["locale"] = strings.TrimSpace(locale)
	}
	if p.Timezone.Present() {
		timezone, _ := p.Timezone.Value()
		updates["timezone"] = strings.TrimSpace(timezone)
	}
	if p.Currency.Present() {
		currency, ok := p.Currency.Value()
		if !ok || !validator.IsCurrency(currency) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be an ISO 4217 code")
		}
		updates["currency"] = currency
	}

	return updates, nil
}

// applyUserUpdates copies a column map onto a fresh user row.
func applyUserUpdates(user *models.User, updates map[string]interface{}) {
	for column, value := range updates {
		switch column {
		case "display_name":
			user.DisplayName = value.(string)
		case "photo_url":
			user.PhotoURL = value.(string)
		case "locale":
			user.Locale = value.(string)
		case "timezone":
			user.Timezone = value.(string)
		case "currency":
			user.Currency = value.(string)
		case "email":
			user.Email = value.(string)
		}
	}
}

// syncProfile mirrors display name and photo changes to the identity
// provider, best-effort.
func (s *userService) syncProfile(uid string, updates map[string]interface{}) {
	displayName, _ := updates["display_name"].(string)
	photoURL, _ := updates["photo_url"].(string)
	if displayName == "" && photoURL == "" {
		return
	}
	if err := s.syncer.SyncProfile(context.Background(), uid, displayName, photoURL); err != nil {
		logger.Get().Warnw("identity sync failed", "op", "sync_profile", "uid", uid, "error", err.Error())
	}
}
