package handler

import (
	"net/http"
	"strconv"

	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

type UpdateProfileRequest struct {
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	DateOfBirth     *string `json:"date_of_birth"`
	Address         *string `json:"address"`
	ProfilePhotoURL *string `json:"profile_photo_url"`
}

// GetMe returns the authenticated profile
func (h *ProfileHandler) GetMe(c *gin.Context) {
	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := h.profileService.Get(profileID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// UpdateMe applies profile edits for the authenticated patient
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := h.profileService.Update(profileID.(uint), service.UpdateProfileInput{
		FullName:        req.FullName,
		Phone:           req.Phone,
		DateOfBirth:     req.DateOfBirth,
		Address:         req.Address,
		ProfilePhotoURL: req.ProfilePhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// ListPatients returns all patients (admin only)
func (h *ProfileHandler) ListPatients(c *gin.Context) {
	patients, err := h.profileService.ListPatients()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, patients)
}

// DeletePatient removes a patient and all dependent rows (admin only)
func (h *ProfileHandler) DeletePatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	profileID, _ := c.Get("profileID")

	if err := h.profileService.DeletePatient(uint(id), profileID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Patient deleted")
}
