package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

type CheckAvailabilityRequest struct {
	DoctorID        uint   `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
}

type CreateAppointmentRequest struct {
	DoctorID         uint   `json:"doctor_id" binding:"required"`
	AppointmentDate  string `json:"appointment_date" binding:"required"`
	AppointmentTime  string `json:"appointment_time" binding:"required"`
	AppointmentType  string `json:"appointment_type" binding:"omitempty,oneof=consultation follow_up emergency routine_checkup"`
	Reason           string `json:"reason" binding:"required"`
	DocumentURL      string `json:"document_url"`
	DocumentFileName string `json:"document_file_name"`
}

type TransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject complete delete"`
	Notes  string `json:"notes"`
}

// CheckAvailability reports whether one slot is free for a doctor
func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	available, message, err := h.appointmentService.CheckAvailability(req.DoctorID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"available": available,
		"message":   message,
	})
}

// ListAvailableSlots returns the free slots for a doctor on a date
func (h *AppointmentHandler) ListAvailableSlots(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	slots, err := h.appointmentService.ListAvailableSlots(uint(doctorID), date)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"slots": slots,
		"count": len(slots),
	})
}

// Create books a new pending appointment for the authenticated patient
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	input := service.CreateAppointmentInput{
		PatientID:       profileID.(uint),
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		AppointmentType: req.AppointmentType,
		Reason:          req.Reason,
	}
	if req.DocumentURL != "" {
		input.Document = &service.DocumentRef{
			URL:        req.DocumentURL,
			FileName:   req.DocumentFileName,
			UploadedAt: time.Now(),
		}
	}

	appointment, err := h.appointmentService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, appointment)
}

// ListMine returns the authenticated patient's appointments
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	appointments, err := h.appointmentService.ListForPatient(profileID.(uint))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	utils.SuccessResponse(c, appointments)
}

// ListAll returns appointments for the admin views, filterable by status
// and date
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	appointments, err := h.appointmentService.ListAll(c.Query("status"), c.Query("date"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	utils.SuccessResponse(c, appointments)
}

// Get returns one appointment. Patients can only read their own.
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	role, _ := c.Get("role")
	profileID, _ := c.Get("profileID")
	if role != "admin" && appointment.PatientID != profileID.(uint) {
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	utils.SuccessResponse(c, appointment)
}

// Transition applies an admin lifecycle action to an appointment
func (h *AppointmentHandler) Transition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request. Action must be 'approve', 'reject', 'complete' or 'delete'")
		return
	}

	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	appointment, err := h.appointmentService.Transition(uint(id), req.Action, req.Notes, profileID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Action == "delete" {
		utils.MessageResponse(c, "Appointment deleted")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment " + appointment.Status,
		"appointment": appointment,
	})
}
