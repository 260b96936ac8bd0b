package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/utils"
)

// Context keys set by the auth middleware.
const (
	CtxPatientID = "patientID"
	CtxDoctorID  = "doctorID"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse{
		Success: false,
		Message: "insufficient authorization",
	})
}

// AuthPatient resolves the request to an existing patient principal.
func AuthPatient(patients patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		sub, role, err := utils.ExtractPrincipal(token)
		if err != nil || role != utils.RolePatient {
			abortUnauthorized(c)
			return
		}
		if _, err := patients.GetByID(sub); err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxPatientID, sub)
		c.Next()
	}
}

// AuthDoctor resolves the request to an existing doctor principal.
func AuthDoctor(doctors doctorRepo.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		sub, role, err := utils.ExtractPrincipal(token)
		if err != nil || role != utils.RoleDoctor {
			abortUnauthorized(c)
			return
		}
		if _, err := doctors.GetByID(sub); err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(CtxDoctorID, sub)
		c.Next()
	}
}
