package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/availability"
	"medibook/utils"
)

// AvailabilityHandler exposes doctor calendar management over HTTP.
type AvailabilityHandler struct {
	Service availability.Service
}

// NewAvailabilityHandler constructs the availability handler.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// UpdateAvailability handles PUT /api/doctor/availability.
func (h *AvailabilityHandler) UpdateAvailability(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	var req models.AvailabilityUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	av, err := h.Service.Update(doctorID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Availability updated successfully",
		"availability": av,
	})
}

// DeleteAvailability handles DELETE /api/doctor/availability. Without a slot
// in the body the whole day's schedule is removed.
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	var req models.AvailabilityDeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("invalid date %q, expected YYYY-MM-DD", req.Date))
		return
	}

	if req.Slot != nil {
		err = h.Service.RemoveSlot(doctorID, date, *req.Slot)
	} else {
		err = h.Service.RemoveDay(doctorID, date)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Schedule deleted successfully",
	})
}
