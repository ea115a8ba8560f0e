package repository

import (
	"errors"
	"time"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepo(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create persists a new verification code
func (r *VerificationRepository) Create(code *models.EmailVerificationCode) error {
	return r.db.Create(code).Error
}

// FindUnused finds the latest unused code row matching email and code.
// Expiry is not checked here so the caller can distinguish expired from
// invalid.
func (r *VerificationRepository) FindUnused(email, code string) (*models.EmailVerificationCode, error) {
	var row models.EmailVerificationCode
	err := r.db.Where("email = ? AND code = ? AND used = ?", email, code, false).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("verification code not found")
		}
		return nil, err
	}
	return &row, nil
}

// MarkUsed consumes a verification code
func (r *VerificationRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.EmailVerificationCode{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// HasVerified reports whether the email has at least one consumed code,
// i.e. the address passed verification before sign-up.
func (r *VerificationRepository) HasVerified(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.EmailVerificationCode{}).
		Where("email = ? AND used = ?", email, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeOlderThan deletes code rows created before the cutoff. Used rows are
// kept until the cutoff too, since sign-up checks for a consumed code.
func (r *VerificationRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).
		Delete(&models.EmailVerificationCode{})
	return result.RowsAffected, result.Error
}
