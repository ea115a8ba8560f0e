package handler

import (
	"net/http"
	"strconv"

	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
}

func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
	}
}

type CreateDoctorRequest struct {
	FullName          string   `json:"full_name" binding:"required,min=2,max=255"`
	Specialization    string   `json:"specialization" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             string   `json:"phone" binding:"required"`
	LicenseNumber     string   `json:"license_number" binding:"required"`
	YearsOfExperience *int     `json:"years_of_experience"`
	ConsultationFee   *float64 `json:"consultation_fee"`
	Available         *bool    `json:"available"`
}

type UpdateDoctorRequest struct {
	FullName          string   `json:"full_name"`
	Specialization    string   `json:"specialization"`
	Email             string   `json:"email" binding:"omitempty,email"`
	Phone             string   `json:"phone"`
	LicenseNumber     string   `json:"license_number"`
	YearsOfExperience *int     `json:"years_of_experience"`
	ConsultationFee   *float64 `json:"consultation_fee"`
	Available         *bool    `json:"available"`
}

// ListBookable returns the doctors a patient can book with
func (h *DoctorHandler) ListBookable(c *gin.Context) {
	doctors, err := h.doctorService.ListBookable()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}

	utils.SuccessResponse(c, doctors)
}

// ListAll returns every doctor for the admin view
func (h *DoctorHandler) ListAll(c *gin.Context) {
	doctors, err := h.doctorService.ListAll()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}

	utils.SuccessResponse(c, doctors)
}

// Create adds a doctor (admin only)
func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID, _ := c.Get("profileID")

	doctor, err := h.doctorService.Create(service.DoctorInput{
		FullName:          req.FullName,
		Specialization:    req.Specialization,
		Email:             req.Email,
		Phone:             req.Phone,
		LicenseNumber:     req.LicenseNumber,
		YearsOfExperience: req.YearsOfExperience,
		ConsultationFee:   req.ConsultationFee,
		Available:         req.Available,
	}, profileID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, doctor)
}

// Update edits a doctor (admin only)
func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID, _ := c.Get("profileID")

	doctor, err := h.doctorService.Update(uint(id), service.DoctorInput{
		FullName:          req.FullName,
		Specialization:    req.Specialization,
		Email:             req.Email,
		Phone:             req.Phone,
		LicenseNumber:     req.LicenseNumber,
		YearsOfExperience: req.YearsOfExperience,
		ConsultationFee:   req.ConsultationFee,
		Available:         req.Available,
	}, profileID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, doctor)
}

// Delete removes a doctor and their appointments (admin only)
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	profileID, _ := c.Get("profileID")

	if err := h.doctorService.Delete(uint(id), profileID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Doctor deleted")
}
