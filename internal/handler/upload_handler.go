package handler

import (
	"errors"
	"net/http"

	"clinic-appointment-backend/internal/storage"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	store *storage.DocumentStore
}

func NewUploadHandler(store *storage.DocumentStore) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// UploadDocument stores a supporting document and returns its public URL.
// The reference is attached to an appointment by the booking request.
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	profileID, exists := c.Get("profileID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	document, err := h.store.Save(profileID.(uint), fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidFileType):
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, WebP, and PDF are allowed.")
		case errors.Is(err, storage.ErrFileTooLarge):
			utils.ErrorResponse(c, http.StatusBadRequest, "File size exceeds 5MB limit")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to upload document")
		}
		return
	}

	utils.SuccessResponse(c, document)
}
