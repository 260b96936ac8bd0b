package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"
)

// BookingHandler exposes the two-phase booking workflow over HTTP.
type BookingHandler struct {
	Service booking.Service
}

// NewBookingHandler constructs the booking handler.
func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// InitiateBooking handles POST /api/booking/initiate.
func (h *BookingHandler) InitiateBooking(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	var req models.InitiateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Service.Initiate(c.Request.Context(), patientID, req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to your email for booking confirmation",
	})
}

// ConfirmBooking handles POST /api/booking/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	var req models.ConfirmBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	bookingRecord, err := h.Service.Confirm(c.Request.Context(), patientID, req.OTP)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": bookingRecord,
	})
}

// CancelBooking handles PUT /api/booking/cancel/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)
	bookingID := c.Param("id")

	var req models.CancelBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.Service.Cancel(c.Request.Context(), patientID, bookingID, req.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
	})
}

// ListBookings handles GET /api/booking/list.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	bookings, err := h.Service.List(c.Request.Context(), patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}

// ChangeBookingStatus handles PUT /api/booking/status (doctor side).
func (h *BookingHandler) ChangeBookingStatus(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	var req models.ChangeBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	bookingRecord, err := h.Service.ChangeStatus(c.Request.Context(), doctorID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"booking": bookingRecord,
	})
}
