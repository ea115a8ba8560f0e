package service

import (
	"fmt"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

type ProfileService struct {
	profileRepo *repository.ProfileRepository
	auditRepo   *repository.AuditRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository, auditRepo *repository.AuditRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
	}
}

// Get returns a single profile
func (s *ProfileService) Get(id uint) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: profile does not exist", ErrNotFound)
	}
	return profile, nil
}

// UpdateProfileInput carries the fields a patient may edit on their own
// profile. Role and email are deliberately not updatable here.
type UpdateProfileInput struct {
	FullName        *string
	Phone           *string
	DateOfBirth     *string
	Address         *string
	ProfilePhotoURL *string
}

// Update applies a patient's edits to their own profile
func (s *ProfileService) Update(id uint, input UpdateProfileInput) (*models.Profile, error) {
	updates := map[string]interface{}{}
	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", ErrValidation)
		}
		updates["full_name"] = *input.FullName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.DateOfBirth != nil {
		updates["date_of_birth"] = *input.DateOfBirth
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.ProfilePhotoURL != nil {
		updates["profile_photo_url"] = *input.ProfilePhotoURL
	}

	if len(updates) > 0 {
		if err := s.profileRepo.Update(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.Get(id)
}

// ListPatients returns all patient profiles for the admin view
func (s *ProfileService) ListPatients() ([]models.Profile, error) {
	return s.profileRepo.ListPatients()
}

// DeletePatient removes a patient and all dependent appointment and
// medical record rows in one transaction
func (s *ProfileService) DeletePatient(id uint, actorID uint) error {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("%w: profile does not exist", ErrNotFound)
	}
	if profile.Role != models.RolePatient {
		return fmt.Errorf("%w: only patient profiles can be deleted", ErrValidation)
	}

	if err := s.profileRepo.DeleteCascade(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "patient_deleted",
		fmt.Sprintf("Deleted patient %s and dependent records", profile.Email))

	return nil
}
