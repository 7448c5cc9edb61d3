package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
)

var profileColumns = []string{
	"name", "email", "phone", "avatar", "bio", "profession", "location", "website", "birth_date",
	"experience", "education", "social_github", "social_linkedin", "social_telegram", "social_instagram",
}

var settingsColumns = []string{
	"theme", "language", "notifications_email", "notifications_push", "privacy_profile_visibility",
	"security_session_timeout", "display_posts_per_page", "display_animations",
}

// DefaultSettings are the preferences seeded for the admin on first read.
func DefaultSettings(userID uint) models.Settings {
	return models.Settings{
		UserID:                   userID,
		Theme:                    "auto",
		Language:                 "uz",
		NotificationsEmail:       true,
		NotificationsPush:        true,
		PrivacyProfileVisibility: "public",
		SecuritySessionTimeout:   30,
		DisplayPostsPerPage:      10,
		DisplayAnimations:        true,
	}
}

// Site owns the single-owner rows: the admin user, its profile and its
// settings. Each is created on first use.
type Site struct {
	db    *gorm.DB
	admin config.Admin
}

func newSite(db *gorm.DB, admin config.Admin) *Site {
	return &Site{db: db, admin: admin}
}

// Profile returns the admin profile, creating the admin and the profile when
// either is missing.
func (s *Site) Profile(ctx context.Context) (*models.Profile, error) {
	var profile *models.Profile
	err := withConn(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		profile, err = s.ensureProfile(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile replaces the editable profile columns.
func (s *Site) UpdateProfile(ctx context.Context, in *models.Profile) (*models.Profile, error) {
	var out models.Profile
	err := withConn(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.ensureProfile(tx); err != nil {
			return err
		}
		res := tx.Model(&models.Profile{}).Where("user_id = ?", s.admin.UserID).Select(profileColumns).Updates(in)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("user_id = ?", s.admin.UserID).Take(&out).Error
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &out, nil
}

// Settings returns the admin settings row, seeding defaults when missing.
func (s *Site) Settings(ctx context.Context) (*models.Settings, error) {
	var settings *models.Settings
	err := withConn(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureAdmin(tx, s.admin); err != nil {
			return err
		}
		var err error
		settings, err = s.ensureSettings(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the admin preferences. The settings row itself is
// not seeded here, so updating before the first read reports ErrNotFound.
func (s *Site) UpdateSettings(ctx context.Context, in *models.Settings) (*models.Settings, error) {
	var out models.Settings
	err := withConn(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureAdmin(tx, s.admin); err != nil {
			return err
		}
		res := tx.Model(&models.Settings{}).Where("user_id = ?", s.admin.UserID).Select(settingsColumns).Updates(in)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("user_id = ?", s.admin.UserID).Take(&out).Error
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &out, nil
}

// UserByEmail seeds the admin if needed and looks a user up by email.
func (s *Site) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := withConn(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureAdmin(tx, s.admin); err != nil {
			return err
		}
		return tx.Where("email = ?", email).Take(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}
