package booking

import (
	"context"

	bookingRepo "medibook/database/repository/booking"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/services/availability"
	"medibook/services/notification"
)

// Service orchestrates the two-phase booking workflow:
// initiate (OTP out) -> confirm (OTP in, record persisted) -> cancel/complete.
type Service interface {
	// Initiate validates the candidate booking, parks it with the OTP broker
	// and emails the code. Nothing is persisted yet.
	Initiate(ctx context.Context, patientID string, req models.InitiateBookingRequest) error
	// Confirm trades a valid OTP for a persisted Scheduled booking: the slot
	// is reserved, the daily serial drawn, and the confirmation email sent.
	Confirm(ctx context.Context, patientID, submittedCode string) (*models.Booking, error)
	// Cancel transitions a Scheduled booking owned by the patient to
	// Cancelled, recording the reason.
	Cancel(ctx context.Context, patientID, bookingID, reason string) error
	// List returns the patient's bookings enriched with the doctor's name and
	// specialization, newest first.
	List(ctx context.Context, patientID string) ([]models.BookingWithDoctor, error)
	// ChangeStatus lets the treating doctor mark a Scheduled booking Completed.
	ChangeStatus(ctx context.Context, doctorID string, req models.ChangeBookingStatusRequest) (*models.Booking, error)
}

// ReminderScheduler enqueues an appointment reminder for a confirmed booking.
// A nil scheduler disables reminders.
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *models.Booking) error
}

// DefaultService is the production workflow controller.
type DefaultService struct {
	Bookings     bookingRepo.BookingRepository
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Availability availability.Service
	OTP          *OTPBroker
	Notifier     notification.NotificationService
	Reminders    ReminderScheduler

	// ReleaseSlotOnCancel frees the doctor's slot again when a booking is
	// cancelled. Policy-controlled: off keeps the slot blocked as a no-show
	// buffer.
	ReleaseSlotOnCancel bool
}
