package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// SlotTaken reports whether an active appointment already occupies the
// given (doctor, date, time) slot. Cancelled rows do not count.
func (r *AppointmentRepository) SlotTaken(doctorID uint, date, timeLabel string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctorID, date, timeLabel).
		Where("status IN ?", models.ActiveStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateIfSlotFree inserts the appointment only if no active row occupies
// its slot. The existence check and the insert run in one transaction with
// the conflicting rows locked, so two concurrent bookings of the same slot
// cannot both succeed. Returns false when the slot was already taken.
func (r *AppointmentRepository) CreateIfSlotFree(appointment *models.Appointment) (bool, error) {
	taken := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?",
				appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime).
			Where("status IN ?", models.ActiveStatuses).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			taken = true
			return nil
		}
		return tx.Create(appointment).Error
	})
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// FindByID finds an appointment by id with patient and doctor preloaded
func (r *AppointmentRepository) FindByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Preload("Patient").Preload("Doctor").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("appointment not found")
		}
		return nil, err
	}
	return &appointment, nil
}

// Update applies the given column updates to an appointment
func (r *AppointmentRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error
}

// Delete permanently removes an appointment
func (r *AppointmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Appointment{}, id).Error
}

// ListByPatient returns a patient's appointments, newest first
func (r *AppointmentRepository) ListByPatient(patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	return appointments, err
}

// ListAll returns appointments for the admin views, optionally filtered
// by status and/or date, newest first
func (r *AppointmentRepository) ListAll(status, date string) ([]models.Appointment, error) {
	query := r.db.Preload("Patient").Preload("Doctor")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if date != "" {
		query = query.Where("appointment_date = ?", date)
	}

	var appointments []models.Appointment
	err := query.Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	return appointments, err
}

// Count returns the number of appointments, optionally for one status
func (r *AppointmentRepository) Count(status string) (int64, error) {
	query := r.db.Model(&models.Appointment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
