package handler

import (
	"net/http"
	"strconv"

	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	recordService *service.MedicalRecordService
}

func NewMedicalRecordHandler(recordService *service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordService: recordService,
	}
}

type CreateMedicalRecordRequest struct {
	PatientID    uint    `json:"patient_id" binding:"required"`
	DoctorID     uint    `json:"doctor_id" binding:"required"`
	VisitDate    string  `json:"visit_date" binding:"required"`
	Diagnosis    string  `json:"diagnosis" binding:"required"`
	Prescription *string `json:"prescription"`
	LabResults   *string `json:"lab_results"`
	Notes        *string `json:"notes"`
}

// ListMine returns the authenticated patient's records
func (h *MedicalRecordHandler) ListMine(c *gin.Context) {
	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	records, err := h.recordService.ListForPatient(profileID.(uint))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch medical records")
		return
	}

	utils.SuccessResponse(c, records)
}

// ListAll returns every record (admin only)
func (h *MedicalRecordHandler) ListAll(c *gin.Context) {
	records, err := h.recordService.ListAll()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch medical records")
		return
	}

	utils.SuccessResponse(c, records)
}

// Create adds a clinical note (admin only)
func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID, _ := c.Get("profileID")

	record, err := h.recordService.Create(service.MedicalRecordInput{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		VisitDate:    req.VisitDate,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		LabResults:   req.LabResults,
		Notes:        req.Notes,
	}, profileID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, record)
}

// Delete removes a clinical note (admin only)
func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	profileID, _ := c.Get("profileID")

	if err := h.recordService.Delete(uint(id), profileID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Medical record deleted")
}
