package service

import (
	"fmt"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

type StatsService struct {
	profileRepo     *repository.ProfileRepository
	doctorRepo      *repository.DoctorRepository
	appointmentRepo *repository.AppointmentRepository
	recordRepo      *repository.MedicalRecordRepository
}

func NewStatsService(
	profileRepo *repository.ProfileRepository,
	doctorRepo *repository.DoctorRepository,
	appointmentRepo *repository.AppointmentRepository,
	recordRepo *repository.MedicalRecordRepository,
) *StatsService {
	return &StatsService{
		profileRepo:     profileRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		recordRepo:      recordRepo,
	}
}

// DashboardStats aggregates the admin dashboard counters
type DashboardStats struct {
	TotalPatients        int64 `json:"total_patients"`
	TotalDoctors         int64 `json:"total_doctors"`
	TotalAppointments    int64 `json:"total_appointments"`
	PendingAppointments  int64 `json:"pending_appointments"`
	ApprovedAppointments int64 `json:"approved_appointments"`
	TotalMedicalRecords  int64 `json:"total_medical_records"`
}

// Dashboard collects the aggregate counts shown on the admin dashboard
func (s *StatsService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalPatients, err = s.profileRepo.CountPatients(); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	if stats.TotalDoctors, err = s.doctorRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}
	if stats.TotalAppointments, err = s.appointmentRepo.Count(""); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	if stats.PendingAppointments, err = s.appointmentRepo.Count(models.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending appointments: %w", err)
	}
	if stats.ApprovedAppointments, err = s.appointmentRepo.Count(models.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to count approved appointments: %w", err)
	}
	if stats.TotalMedicalRecords, err = s.recordRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count medical records: %w", err)
	}

	return stats, nil
}
