package notification

import (
	"context"
	"fmt"

	"medibook/models"
)

// NotificationService sends the patient-facing booking emails.
type NotificationService interface {
	SendBookingOTP(ctx context.Context, patient *models.Patient, otp string) error
	SendBookingConfirmation(ctx context.Context, patient *models.Patient, booking *models.Booking) error
	SendBookingCancellation(ctx context.Context, patient *models.Patient, booking *models.Booking) error
	SendBookingReminder(ctx context.Context, patient *models.Patient, booking *models.Booking) error
}

// DefaultNotificationService composes the hospital's email bodies and hands
// them to the configured sender.
type DefaultNotificationService struct {
	Sender EmailSender
}

const signature = "\n\nThanks and Regards,\nMediBook Hospital Management System"

func (s *DefaultNotificationService) SendBookingOTP(ctx context.Context, patient *models.Patient, otp string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour OTP for booking confirmation is: %s\n\nThis OTP is valid for 15 minutes.%s",
		patient.FirstName, otp, signature)
	return s.Sender.Send(ctx, EmailMessage{
		To:      patient.Email,
		ToName:  patient.FirstName,
		Subject: "OTP for Appointment Booking",
		Body:    body,
	})
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, patient *models.Patient, booking *models.Booking) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment has been booked successfully for %s at %s.\n\n"+
			"Your serial number is %s.\n\n"+
			"Please arrive at the hospital at least 30 minutes before your appointment time.%s",
		patient.FirstName,
		booking.BookingDate.Format("Mon Jan 02 2006"),
		booking.BookingTimeSlot,
		booking.SerialNumber,
		signature)
	return s.Sender.Send(ctx, EmailMessage{
		To:      patient.Email,
		ToName:  patient.FirstName,
		Subject: "Appointment Booking Confirmation",
		Body:    body,
	})
}

func (s *DefaultNotificationService) SendBookingCancellation(ctx context.Context, patient *models.Patient, booking *models.Booking) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with serial number %s scheduled for %s %s has been cancelled.\n\n"+
			"Thank you for informing us.%s",
		patient.FirstName,
		booking.SerialNumber,
		booking.BookingDate.Format("2006-01-02"),
		booking.BookingTimeSlot,
		signature)
	return s.Sender.Send(ctx, EmailMessage{
		To:      patient.Email,
		ToName:  patient.FirstName,
		Subject: "Appointment Cancellation Confirmation",
		Body:    body,
	})
}

func (s *DefaultNotificationService) SendBookingReminder(ctx context.Context, patient *models.Patient, booking *models.Booking) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder for your appointment tomorrow, %s at %s (serial number %s).\n\n"+
			"Please arrive at the hospital at least 30 minutes early.%s",
		patient.FirstName,
		booking.BookingDate.Format("Mon Jan 02 2006"),
		booking.BookingTimeSlot,
		booking.SerialNumber,
		signature)
	return s.Sender.Send(ctx, EmailMessage{
		To:      patient.Email,
		ToName:  patient.FirstName,
		Subject: "Appointment Reminder",
		Body:    body,
	})
}
