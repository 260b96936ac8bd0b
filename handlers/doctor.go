package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/doctor"
	"medibook/utils"
)

// DoctorHandler exposes doctor account endpoints.
type DoctorHandler struct {
	Service doctor.Service
}

// NewDoctorHandler constructs the doctor handler.
func NewDoctorHandler(svc doctor.Service) *DoctorHandler {
	return &DoctorHandler{Service: svc}
}

// RegisterDoctor handles POST /api/doctor/register.
func (h *DoctorHandler) RegisterDoctor(c *gin.Context) {
	var reg doctor.Registration
	if !bindJSON(c, &reg) {
		return
	}

	d, token, err := h.Service.Register(reg)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"doctor":  d,
		"token":   token,
	})
}

// LoginDoctor handles POST /api/doctor/login.
func (h *DoctorHandler) LoginDoctor(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds) {
		return
	}

	d, token, err := h.Service.Login(creds)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"doctor":  d,
		"token":   token,
	})
}

// GetDoctorProfile handles GET /api/doctor/me.
func (h *DoctorHandler) GetDoctorProfile(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	d, err := h.Service.GetByID(doctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"doctor":  d,
	})
}

// ListDoctors handles GET /api/doctors (public directory for the booking UI).
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.Service.ListPublic()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"doctors": doctors,
	})
}
