package handler

import (
	"errors"
	"net/http"

	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer errors onto HTTP status codes. Unknown
// errors are reported as a generic internal error so storage details never
// leak to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrExpiredCode),
		errors.Is(err, service.ErrEmailNotVerified):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmailTaken):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
