package repository

import (
	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(profileID *uint, action string, details string) error {
	log := &models.AuditLog{
		ProfileID: profileID,
		Action:    action,
		Details:   details,
	}
	return r.db.Create(log).Error
}
