package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByEmail finds a profile by email
func (r *ProfileRepository) FindByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// FindByID finds a profile by id
func (r *ProfileRepository) FindByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update applies the given column updates to a profile
func (r *ProfileRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Updates(updates).Error
}

// ListPatients returns all patient profiles ordered by full name
func (r *ProfileRepository) ListPatients() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("role = ?", models.RolePatient).
		Order("full_name ASC").
		Find(&profiles).Error
	return profiles, err
}

// CountPatients returns the number of patient profiles
func (r *ProfileRepository) CountPatients() (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).
		Where("role = ?", models.RolePatient).
		Count(&count).Error
	return count, err
}

// DeleteCascade removes a profile together with all of its dependent rows.
// Appointments, medical records and refresh tokens go first so no orphans
// remain if a later delete fails.
func (r *ProfileRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&models.MedicalRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, id).Error
	})
}

// CreateRefreshToken creates a new refresh token
func (r *ProfileRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindRefreshTokenByHash finds a refresh token by its hash
func (r *ProfileRepository) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("Profile").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or revoked")
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked by its hash
func (r *ProfileRepository) RevokeRefreshTokenByHash(hash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

// RevokeAllRefreshTokens revokes every live refresh token of a profile.
// Used after a password reset so stolen sessions die with the old password.
func (r *ProfileRepository) RevokeAllRefreshTokens(profileID uint) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("profile_id = ? AND revoked = ?", profileID, false).
		Update("revoked", true).Error
}
