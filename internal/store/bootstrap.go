package store

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
)

// ensureAdmin inserts the admin user when its id is absent. The existence
// check keeps the bcrypt cost off the hot path; ON CONFLICT DO NOTHING covers
// concurrent first requests.
func ensureAdmin(tx *gorm.DB, admin config.Admin) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", admin.UserID).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := models.User{
		ID:           admin.UserID,
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: string(hash),
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

func (s *Site) ensureProfile(tx *gorm.DB) (*models.Profile, error) {
	if err := ensureAdmin(tx, s.admin); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := tx.Where("user_id = ?", s.admin.UserID).Take(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := models.Profile{UserID: s.admin.UserID, Name: s.admin.Name, Email: s.admin.Email}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := tx.Where("user_id = ?", s.admin.UserID).Take(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Site) ensureSettings(tx *gorm.DB) (*models.Settings, error) {
	var settings models.Settings
	err := tx.Where("user_id = ?", s.admin.UserID).Take(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := DefaultSettings(s.admin.UserID)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("create settings: %w", err)
	}
	if err := tx.Where("user_id = ?", s.admin.UserID).Take(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
