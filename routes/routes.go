package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medibook/config"
	"medibook/handlers"
	"medibook/middleware"
)

// RegisterPatientRoutes registers patient account endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patient")
	{
		api.POST("/register", hb.RegisterPatient)
		api.POST("/login", hb.LoginPatient)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthPatient(hb.PatientRepo))
		api.GET("/me", hb.GetPatientProfile)
	}
}

// RegisterDoctorRoutes registers doctor account and availability endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/doctors", hb.ListDoctors)

	api := r.Group("/api/doctor")
	{
		api.POST("/register", hb.RegisterDoctor)
		api.POST("/login", hb.LoginDoctor)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthDoctor(hb.DoctorRepo))
		api.GET("/me", hb.GetDoctorProfile)
		api.PUT("/availability", hb.UpdateAvailability)
		api.DELETE("/availability", hb.DeleteAvailability)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking workflow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		patientSide := bookingGroup.Group("")
		patientSide.Use(middleware.AuthPatient(hb.PatientRepo))
		patientSide.POST("/initiate", hb.InitiateBooking)
		patientSide.POST("/confirm", hb.ConfirmBooking)
		patientSide.PUT("/cancel/:id", hb.CancelBooking)
		patientSide.GET("/list", hb.ListBookings)

		doctorSide := bookingGroup.Group("")
		doctorSide.Use(middleware.AuthDoctor(hb.DoctorRepo))
		doctorSide.PUT("/status", hb.ChangeBookingStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediBook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPatientRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
