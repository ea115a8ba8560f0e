package service

import (
	"fmt"
	"time"

	"clinic-appointment-backend/internal/models"
)

const dateLayout = "2006-01-02"

// AppointmentStore is the persistence surface the lifecycle manager needs
type AppointmentStore interface {
	SlotTaken(doctorID uint, date, timeLabel string) (bool, error)
	CreateIfSlotFree(appointment *models.Appointment) (bool, error)
	FindByID(id uint) (*models.Appointment, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	ListByPatient(patientID uint) ([]models.Appointment, error)
	ListAll(status, date string) ([]models.Appointment, error)
}

// DoctorFinder looks up doctors for booking validation
type DoctorFinder interface {
	FindByID(id uint) (*models.Doctor, error)
}

// ProfileFinder looks up profiles for notification recipients
type ProfileFinder interface {
	FindByID(id uint) (*models.Profile, error)
}

// AuditLogger records admin actions; writes are fire-and-forget
type AuditLogger interface {
	CreateAuditLog(profileID *uint, action string, details string) error
}

// AppointmentService owns the appointment state machine and the slot
// availability checks performed before booking.
type AppointmentService struct {
	appointments AppointmentStore
	doctors      DoctorFinder
	profiles     ProfileFinder
	notifier     Notifier
	audit        AuditLogger
	now          func() time.Time
}

func NewAppointmentService(
	appointments AppointmentStore,
	doctors DoctorFinder,
	profiles ProfileFinder,
	notifier Notifier,
	audit AuditLogger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		profiles:     profiles,
		notifier:     notifier,
		audit:        audit,
		now:          time.Now,
	}
}

// CheckAvailability reports whether the (doctor, date, time) slot is free.
// A slot is taken while a pending, approved or completed appointment
// occupies it; cancelled appointments free the slot for re-booking.
func (s *AppointmentService) CheckAvailability(doctorID uint, date, timeLabel string) (bool, string, error) {
	if doctorID == 0 || date == "" || timeLabel == "" {
		return false, "", fmt.Errorf("%w: doctor, date and time are required", ErrValidation)
	}
	if !ValidSlot(timeLabel) {
		return false, "", fmt.Errorf("%w: time must be one of the hourly slots", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return false, "", fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}

	taken, err := s.appointments.SlotTaken(doctorID, date, timeLabel)
	if err != nil {
		return false, "", fmt.Errorf("failed to check availability: %w", err)
	}

	if taken {
		return false, "Time slot is already booked", nil
	}
	return true, "Time slot is available", nil
}

// ListAvailableSlots returns the slot labels still free for the doctor on
// the given date, in ascending order. Each candidate slot is re-validated
// independently.
func (s *AppointmentService) ListAvailableSlots(doctorID uint, date string) ([]string, error) {
	if doctorID == 0 || date == "" {
		return nil, fmt.Errorf("%w: doctor and date are required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}

	available := []string{}
	for _, slot := range CandidateSlots() {
		taken, err := s.appointments.SlotTaken(doctorID, date, slot)
		if err != nil {
			return nil, fmt.Errorf("failed to check availability: %w", err)
		}
		if !taken {
			available = append(available, slot)
		}
	}

	return available, nil
}

// DocumentRef points at an already-uploaded supporting document
type DocumentRef struct {
	URL        string
	FileName   string
	UploadedAt time.Time
}

// CreateAppointmentInput carries a patient's booking request. Document is
// optional; a booking without one is accepted.
type CreateAppointmentInput struct {
	PatientID       uint
	DoctorID        uint
	AppointmentDate string
	AppointmentTime string
	AppointmentType string
	Reason          string
	Document        *DocumentRef
}

// Create books a new pending appointment. The slot check and the insert
// run atomically in the store so two patients cannot take the same slot.
// The confirmation email is best-effort.
func (s *AppointmentService) Create(input CreateAppointmentInput) (*models.Appointment, error) {
	if input.PatientID == 0 || input.DoctorID == 0 || input.Reason == "" {
		return nil, fmt.Errorf("%w: patient, doctor and reason are required", ErrValidation)
	}
	if !ValidSlot(input.AppointmentTime) {
		return nil, fmt.Errorf("%w: time must be one of the hourly slots", ErrValidation)
	}

	if _, err := time.Parse(dateLayout, input.AppointmentDate); err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}
	if input.AppointmentDate < s.now().Format(dateLayout) {
		return nil, fmt.Errorf("%w: appointment date cannot be in the past", ErrValidation)
	}

	if input.AppointmentType == "" {
		input.AppointmentType = "consultation"
	}

	doctor, err := s.doctors.FindByID(input.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("%w: doctor does not exist", ErrNotFound)
	}
	if !doctor.Available {
		return nil, fmt.Errorf("%w: doctor is not accepting appointments", ErrValidation)
	}

	appointment := &models.Appointment{
		PatientID:       input.PatientID,
		DoctorID:        input.DoctorID,
		AppointmentDate: input.AppointmentDate,
		AppointmentTime: input.AppointmentTime,
		AppointmentType: input.AppointmentType,
		Reason:          input.Reason,
		Status:          models.StatusPending,
	}
	if input.Document != nil {
		appointment.DocumentURL = &input.Document.URL
		appointment.DocumentFileName = &input.Document.FileName
		uploadedAt := input.Document.UploadedAt
		appointment.DocumentUploadedAt = &uploadedAt
	}

	created, err := s.appointments.CreateIfSlotFree(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	if !created {
		return nil, ErrSlotTaken
	}

	// Confirmation email; failure never rolls back the booking.
	if patient, err := s.profiles.FindByID(input.PatientID); err == nil {
		s.notifier.Enqueue("appointment_pending", patient.Email, map[string]string{
			"full_name":          patient.FullName,
			"doctor_name":        doctor.FullName,
			"specialization":     doctor.Specialization,
			"appointment_date":   formatAppointmentDate(appointment.AppointmentDate),
			"appointment_time":   appointment.AppointmentTime,
			"appointment_reason": appointment.Reason,
		})
	}

	return appointment, nil
}

// Transition moves an appointment through its lifecycle.
//
//	pending  -> approved (approve) | cancelled (reject)
//	approved -> completed (complete) | cancelled
//	delete removes the row regardless of status
//
// Completed and cancelled are terminal. Notifications are best-effort.
func (s *AppointmentService) Transition(appointmentID uint, action, notes string, actorID uint) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment does not exist", ErrNotFound)
	}

	switch action {
	case "approve":
		if appointment.Status != models.StatusPending {
			return nil, fmt.Errorf("%w: only pending appointments can be approved", ErrInvalidTransition)
		}
		return s.applyDecision(appointment, models.StatusApproved, notes, actorID)

	case "reject":
		if appointment.Status != models.StatusPending {
			return nil, fmt.Errorf("%w: only pending appointments can be rejected", ErrInvalidTransition)
		}
		if notes == "" {
			notes = "Rejected by admin"
		}
		return s.applyDecision(appointment, models.StatusCancelled, notes, actorID)

	case "complete":
		if appointment.Status != models.StatusApproved {
			return nil, fmt.Errorf("%w: only approved appointments can be completed", ErrInvalidTransition)
		}
		if appointment.AppointmentDate > s.now().Format(dateLayout) {
			return nil, fmt.Errorf("%w: appointment date has not passed yet", ErrInvalidTransition)
		}
		return s.applyDecision(appointment, models.StatusCompleted, notes, actorID)

	case "delete":
		if err := s.appointments.Delete(appointment.ID); err != nil {
			return nil, fmt.Errorf("failed to delete appointment: %w", err)
		}
		actorIDPtr := &actorID
		_ = s.audit.CreateAuditLog(actorIDPtr, "appointment_deleted",
			fmt.Sprintf("Deleted appointment %d", appointment.ID))
		return appointment, nil

	default:
		return nil, fmt.Errorf("%w: action must be approve, reject, complete or delete", ErrValidation)
	}
}

func (s *AppointmentService) applyDecision(appointment *models.Appointment, newStatus, notes string, actorID uint) (*models.Appointment, error) {
	now := s.now()

	updates := map[string]interface{}{
		"status":      newStatus,
		"approved_by": actorID,
		"approved_at": now,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	if err := s.appointments.Update(appointment.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	appointment.Status = newStatus
	appointment.ApprovedBy = &actorID
	appointment.ApprovedAt = &now
	if notes != "" {
		appointment.Notes = &notes
	}

	s.notifyDecision(appointment, newStatus)

	actorIDPtr := &actorID
	_ = s.audit.CreateAuditLog(actorIDPtr, "appointment_"+newStatus,
		fmt.Sprintf("Appointment %d set to %s", appointment.ID, newStatus))

	return appointment, nil
}

func (s *AppointmentService) notifyDecision(appointment *models.Appointment, newStatus string) {
	var templateName string
	switch newStatus {
	case models.StatusApproved:
		templateName = "appointment_approved"
	case models.StatusCancelled:
		templateName = "appointment_cancelled"
	default:
		return
	}

	if appointment.Patient == nil || appointment.Doctor == nil {
		return
	}

	s.notifier.Enqueue(templateName, appointment.Patient.Email, map[string]string{
		"full_name":          appointment.Patient.FullName,
		"doctor_name":        appointment.Doctor.FullName,
		"specialization":     appointment.Doctor.Specialization,
		"appointment_date":   formatAppointmentDate(appointment.AppointmentDate),
		"appointment_time":   appointment.AppointmentTime,
		"appointment_reason": appointment.Reason,
	})
}

// ListForPatient returns a patient's own appointments
func (s *AppointmentService) ListForPatient(patientID uint) ([]models.Appointment, error) {
	return s.appointments.ListByPatient(patientID)
}

// ListAll returns appointments for the admin views, optionally filtered
func (s *AppointmentService) ListAll(status, date string) ([]models.Appointment, error) {
	return s.appointments.ListAll(status, date)
}

// Get returns one appointment with its patient and doctor
func (s *AppointmentService) Get(appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment does not exist", ErrNotFound)
	}
	return appointment, nil
}

// formatAppointmentDate renders a stored date label like the notification
// emails expect ("Monday, January 2, 2006"). Falls back to the raw label.
func formatAppointmentDate(date string) string {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 2, 2006")
}
