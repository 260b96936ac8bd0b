package handlers

import (
	"github.com/gin-gonic/gin"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
)

// HandlerBundle collects the assembled handlers and the repositories the
// auth middleware needs; routes are registered against it.
type HandlerBundle struct {
	PatientRepo patientRepo.PatientRepository
	DoctorRepo  doctorRepo.DoctorRepository

	// Patient endpoints.
	RegisterPatient   gin.HandlerFunc
	LoginPatient      gin.HandlerFunc
	GetPatientProfile gin.HandlerFunc

	// Doctor endpoints.
	RegisterDoctor   gin.HandlerFunc
	LoginDoctor      gin.HandlerFunc
	GetDoctorProfile gin.HandlerFunc
	ListDoctors      gin.HandlerFunc

	// Booking endpoints.
	InitiateBooking     gin.HandlerFunc
	ConfirmBooking      gin.HandlerFunc
	CancelBooking       gin.HandlerFunc
	ListBookings        gin.HandlerFunc
	ChangeBookingStatus gin.HandlerFunc

	// Availability endpoints.
	UpdateAvailability gin.HandlerFunc
	DeleteAvailability gin.HandlerFunc
}
