package service

import (
	"fmt"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

type DoctorService struct {
	doctorRepo *repository.DoctorRepository
	auditRepo  *repository.AuditRepository
}

func NewDoctorService(doctorRepo *repository.DoctorRepository, auditRepo *repository.AuditRepository) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		auditRepo:  auditRepo,
	}
}

// DoctorInput carries the admin-editable doctor fields
type DoctorInput struct {
	FullName          string
	Specialization    string
	Email             string
	Phone             string
	LicenseNumber     string
	YearsOfExperience *int
	ConsultationFee   *float64
	Available         *bool
}

// Create adds a new doctor profile (admin only)
func (s *DoctorService) Create(input DoctorInput, actorID uint) (*models.Doctor, error) {
	if input.FullName == "" || input.Specialization == "" || input.Email == "" ||
		input.Phone == "" || input.LicenseNumber == "" {
		return nil, fmt.Errorf("%w: full name, specialization, email, phone and license number are required", ErrValidation)
	}

	doctor := &models.Doctor{
		FullName:          input.FullName,
		Specialization:    input.Specialization,
		Email:             input.Email,
		Phone:             input.Phone,
		LicenseNumber:     input.LicenseNumber,
		YearsOfExperience: input.YearsOfExperience,
		ConsultationFee:   input.ConsultationFee,
		Available:         true,
	}
	if input.Available != nil {
		doctor.Available = *input.Available
	}

	if err := s.doctorRepo.Create(doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "doctor_created",
		fmt.Sprintf("Created doctor %s (%s)", doctor.FullName, doctor.Specialization))

	return doctor, nil
}

// Update edits a doctor profile (admin only)
func (s *DoctorService) Update(id uint, input DoctorInput, actorID uint) (*models.Doctor, error) {
	if _, err := s.doctorRepo.FindByID(id); err != nil {
		return nil, fmt.Errorf("%w: doctor does not exist", ErrNotFound)
	}

	updates := map[string]interface{}{}
	if input.FullName != "" {
		updates["full_name"] = input.FullName
	}
	if input.Specialization != "" {
		updates["specialization"] = input.Specialization
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.LicenseNumber != "" {
		updates["license_number"] = input.LicenseNumber
	}
	if input.YearsOfExperience != nil {
		updates["years_of_experience"] = *input.YearsOfExperience
	}
	if input.ConsultationFee != nil {
		updates["consultation_fee"] = *input.ConsultationFee
	}
	if input.Available != nil {
		updates["available"] = *input.Available
	}

	if len(updates) > 0 {
		if err := s.doctorRepo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update doctor: %w", err)
		}
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "doctor_updated", fmt.Sprintf("Updated doctor %d", id))

	return s.doctorRepo.FindByID(id)
}

// Delete removes a doctor and their appointments (admin only)
func (s *DoctorService) Delete(id uint, actorID uint) error {
	doctor, err := s.doctorRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("%w: doctor does not exist", ErrNotFound)
	}

	if err := s.doctorRepo.DeleteCascade(id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "doctor_deleted",
		fmt.Sprintf("Deleted doctor %s and their appointments", doctor.FullName))

	return nil
}

// ListAll returns every doctor for the admin view
func (s *DoctorService) ListAll() ([]models.Doctor, error) {
	return s.doctorRepo.ListAll()
}

// ListBookable returns the doctors patients can book with
func (s *DoctorService) ListBookable() ([]models.Doctor, error) {
	return s.doctorRepo.ListAvailable()
}

// Get returns a single doctor
func (s *DoctorService) Get(id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: doctor does not exist", ErrNotFound)
	}
	return doctor, nil
}
