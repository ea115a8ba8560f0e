package service

import (
	"fmt"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

type MedicalRecordService struct {
	recordRepo  *repository.MedicalRecordRepository
	profileRepo *repository.ProfileRepository
	doctorRepo  *repository.DoctorRepository
	auditRepo   *repository.AuditRepository
}

func NewMedicalRecordService(
	recordRepo *repository.MedicalRecordRepository,
	profileRepo *repository.ProfileRepository,
	doctorRepo *repository.DoctorRepository,
	auditRepo *repository.AuditRepository,
) *MedicalRecordService {
	return &MedicalRecordService{
		recordRepo:  recordRepo,
		profileRepo: profileRepo,
		doctorRepo:  doctorRepo,
		auditRepo:   auditRepo,
	}
}

// MedicalRecordInput carries the admin-entered clinical note fields
type MedicalRecordInput struct {
	PatientID    uint
	DoctorID     uint
	VisitDate    string
	Diagnosis    string
	Prescription *string
	LabResults   *string
	Notes        *string
}

// Create adds a clinical note for a completed visit (admin only)
func (s *MedicalRecordService) Create(input MedicalRecordInput, actorID uint) (*models.MedicalRecord, error) {
	if input.PatientID == 0 || input.DoctorID == 0 || input.VisitDate == "" || input.Diagnosis == "" {
		return nil, fmt.Errorf("%w: patient, doctor, visit date and diagnosis are required", ErrValidation)
	}

	if _, err := s.profileRepo.FindByID(input.PatientID); err != nil {
		return nil, fmt.Errorf("%w: patient does not exist", ErrNotFound)
	}
	if _, err := s.doctorRepo.FindByID(input.DoctorID); err != nil {
		return nil, fmt.Errorf("%w: doctor does not exist", ErrNotFound)
	}

	record := &models.MedicalRecord{
		PatientID:    input.PatientID,
		DoctorID:     input.DoctorID,
		VisitDate:    input.VisitDate,
		Diagnosis:    input.Diagnosis,
		Prescription: input.Prescription,
		LabResults:   input.LabResults,
		Notes:        input.Notes,
	}

	if err := s.recordRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "medical_record_created",
		fmt.Sprintf("Created medical record %d for patient %d", record.ID, record.PatientID))

	return record, nil
}

// Delete removes a clinical note (admin only)
func (s *MedicalRecordService) Delete(id uint, actorID uint) error {
	record, err := s.recordRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("%w: medical record does not exist", ErrNotFound)
	}

	if err := s.recordRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "medical_record_deleted",
		fmt.Sprintf("Deleted medical record %d", record.ID))

	return nil
}

// ListForPatient returns a patient's own records
func (s *MedicalRecordService) ListForPatient(patientID uint) ([]models.MedicalRecord, error) {
	return s.recordRepo.ListByPatient(patientID)
}

// ListAll returns every record for the admin view
func (s *MedicalRecordService) ListAll() ([]models.MedicalRecord, error) {
	return s.recordRepo.ListAll()
}
