package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/patient"
	"medibook/utils"
)

// PatientHandler exposes patient account endpoints.
type PatientHandler struct {
	Service patient.Service
}

// NewPatientHandler constructs the patient handler.
func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{Service: svc}
}

// RegisterPatient handles POST /api/patient/register.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var reg models.PatientRegistration
	if !bindJSON(c, &reg) {
		return
	}

	p, token, err := h.Service.Register(reg)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"patient": p,
		"token":   token,
	})
}

// LoginPatient handles POST /api/patient/login.
func (h *PatientHandler) LoginPatient(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds) {
		return
	}

	p, token, err := h.Service.Login(creds)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"patient": p,
		"token":   token,
	})
}

// GetPatientProfile handles GET /api/patient/me.
func (h *PatientHandler) GetPatientProfile(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	p, err := h.Service.GetByID(patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"patient": p,
	})
}
