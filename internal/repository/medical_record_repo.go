package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepo(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

// FindByID finds a medical record by id
func (r *MedicalRecordRepository) FindByID(id uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.Preload("Patient").Preload("Doctor").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("medical record not found")
		}
		return nil, err
	}
	return &record, nil
}

// Create creates a new medical record
func (r *MedicalRecordRepository) Create(record *models.MedicalRecord) error {
	return r.db.Create(record).Error
}

// Delete permanently removes a medical record
func (r *MedicalRecordRepository) Delete(id uint) error {
	return r.db.Delete(&models.MedicalRecord{}, id).Error
}

// ListByPatient returns a patient's records, most recent visit first
func (r *MedicalRecordRepository) ListByPatient(patientID uint) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Find(&records).Error
	return records, err
}

// ListAll returns all records for the admin view, most recent visit first
func (r *MedicalRecordRepository) ListAll() ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.Preload("Patient").Preload("Doctor").
		Order("visit_date DESC").
		Find(&records).Error
	return records, err
}

// Count returns the number of medical records
func (r *MedicalRecordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MedicalRecord{}).Count(&count).Error
	return count, err
}
