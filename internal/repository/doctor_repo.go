package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// FindByID finds a doctor by id
func (r *DoctorRepository) FindByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("doctor not found")
		}
		return nil, err
	}
	return &doctor, nil
}

// Create creates a new doctor
func (r *DoctorRepository) Create(doctor *models.Doctor) error {
	return r.db.Create(doctor).Error
}

// Update applies the given column updates to a doctor
func (r *DoctorRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Doctor{}).Where("id = ?", id).Updates(updates).Error
}

// ListAll returns all doctors ordered by full name
func (r *DoctorRepository) ListAll() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Order("full_name ASC").Find(&doctors).Error
	return doctors, err
}

// ListAvailable returns bookable doctors ordered by full name
func (r *DoctorRepository) ListAvailable() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Where("available = ?", true).
		Order("full_name ASC").
		Find(&doctors).Error
	return doctors, err
}

// Count returns the number of doctors
func (r *DoctorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Doctor{}).Count(&count).Error
	return count, err
}

// DeleteCascade removes a doctor and every appointment booked with them
func (r *DoctorRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Doctor{}, id).Error
	})
}
