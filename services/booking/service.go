package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medibook/models"
	"medibook/utils"
)

// Initiate runs phase one of the booking protocol. It rejects a candidate
// that duplicates an existing Scheduled booking for the same patient, doctor,
// calendar day and time slot, then parks the payload with the OTP broker and
// emails the code. The availability calendar and the ledger stay untouched.
func (s *DefaultService) Initiate(ctx context.Context, patientID string, req models.InitiateBookingRequest) error {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return err
	}

	day, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return err
	}

	slotLabel := strings.TrimSpace(req.BookingTimeSlot)
	slot, ok := models.ParseSlotLabel(slotLabel)
	if !ok || !models.ValidSlot(slot) {
		return utils.NewValidationError("invalid time slot selected")
	}

	if _, err := s.Doctors.GetByID(req.DoctorID); err != nil {
		return err
	}

	existing, err := s.Bookings.FindScheduled(patientID, req.DoctorID, day, slotLabel)
	if err != nil {
		return err
	}
	if existing != nil {
		return newDuplicateBookingError()
	}

	payload := models.PendingBooking{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		PatientSex:      req.PatientSex,
		PatientAge:      req.PatientAge,
		PatientAddress:  req.PatientAddress,
		BookingDate:     day,
		BookingTimeSlot: slotLabel,
	}

	code, err := s.OTP.Issue(ctx, patientID, payload)
	if err != nil {
		return err
	}

	if err := s.Notifier.SendBookingOTP(ctx, patient, code); err != nil {
		return err
	}

	utils.GetLogger().Info("booking initiated",
		zap.String("patientId", patientID),
		zap.String("doctorId", req.DoctorID),
		zap.String("date", day.Format("2006-01-02")),
		zap.String("slot", slotLabel))
	return nil
}

// Confirm runs phase two. The OTP broker consumes the code; the doctor's slot
// is then reserved before anything is written to the ledger, so a slot taken
// during the OTP window fails here instead of double-booking. The serial
// number comes from the atomic per-day counter.
func (s *DefaultService) Confirm(ctx context.Context, patientID, submittedCode string) (*models.Booking, error) {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return nil, err
	}

	payload, err := s.OTP.Verify(ctx, patientID, submittedCode)
	if err != nil {
		return nil, err
	}

	slot, ok := models.ParseSlotLabel(payload.BookingTimeSlot)
	if !ok {
		return nil, utils.NewValidationError("invalid time slot selected")
	}

	if err := s.Availability.Reserve(payload.DoctorID, payload.BookingDate, slot); err != nil {
		return nil, err
	}

	seq, err := s.Bookings.NextSerial(payload.BookingDate)
	if err != nil {
		s.rollbackReservation(payload.DoctorID, payload.BookingDate, slot)
		return nil, err
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		DoctorID:        payload.DoctorID,
		PatientID:       patientID,
		PatientName:     payload.PatientName,
		PatientPhone:    payload.PatientPhone,
		PatientSex:      payload.PatientSex,
		PatientAge:      payload.PatientAge,
		PatientAddress:  payload.PatientAddress,
		BookingDate:     models.DayOf(payload.BookingDate),
		BookingTimeSlot: payload.BookingTimeSlot,
		Status:          models.BookingScheduled,
		SerialNumber:    fmt.Sprintf("%s-%03d", models.DayOf(payload.BookingDate).Format("20060102"), seq),
	}

	if err := s.Bookings.Create(booking); err != nil {
		s.rollbackReservation(payload.DoctorID, payload.BookingDate, slot)
		return nil, err
	}

	// Back-references are non-owning; failures degrade lookups, not the booking.
	if err := s.Patients.AppendBooking(patientID, booking.ID); err != nil {
		utils.GetLogger().Warn("failed to append booking to patient", zap.Error(err))
	}
	if err := s.Doctors.AppendBooking(payload.DoctorID, booking.ID); err != nil {
		utils.GetLogger().Warn("failed to append booking to doctor", zap.Error(err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.Schedule(ctx, booking); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder", zap.Error(err))
		}
	}

	// The booking is persisted; a lost confirmation email is only a lost
	// notification, never a rollback.
	if err := s.Notifier.SendBookingConfirmation(ctx, patient, booking); err != nil {
		utils.GetLogger().Error("failed to send booking confirmation email", zap.Error(err))
	}

	utils.GetLogger().Info("booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("serialNumber", booking.SerialNumber))
	return booking, nil
}

// Cancel transitions a Scheduled booking to Cancelled. Terminal states are
// rejected; the cancellation email is best-effort once the state change is
// persisted.
func (s *DefaultService) Cancel(ctx context.Context, patientID, bookingID, reason string) error {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return err
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return newBookingNotFoundError()
	}
	if booking.PatientID != patientID {
		return newBookingNotFoundError()
	}
	switch booking.Status {
	case models.BookingCancelled:
		return newAlreadyCancelledError()
	case models.BookingCompleted:
		return newAlreadyCompletedError()
	}

	now := time.Now().UTC()
	status := models.BookingCancelled
	fields := models.UpdateBookingFields{
		Status:             &status,
		CancelledAt:        &now,
		CancellationReason: &reason,
	}
	if err := s.Bookings.UpdateFields(bookingID, fields); err != nil {
		return err
	}
	fields.Apply(booking)

	if s.ReleaseSlotOnCancel {
		if slot, ok := models.ParseSlotLabel(booking.BookingTimeSlot); ok {
			if err := s.Availability.Release(booking.DoctorID, booking.BookingDate, slot); err != nil {
				utils.GetLogger().Warn("failed to release cancelled slot", zap.Error(err))
			}
		}
	}

	if err := s.Notifier.SendBookingCancellation(ctx, patient, booking); err != nil {
		utils.GetLogger().Error("failed to send cancellation email", zap.Error(err))
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingId", bookingID),
		zap.String("reason", reason))
	return nil
}

// List returns the bookings referenced by the patient, enriched with the
// doctor's name and specialization, newest first.
func (s *DefaultService) List(ctx context.Context, patientID string) ([]models.BookingWithDoctor, error) {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.GetByIDs(patient.Bookings)
	if err != nil {
		return nil, err
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	doctors := make(map[string]*models.Doctor)
	enriched := make([]models.BookingWithDoctor, 0, len(bookings))
	for _, b := range bookings {
		doctor, ok := doctors[b.DoctorID]
		if !ok {
			doctor, err = s.Doctors.GetByID(b.DoctorID)
			if err != nil {
				utils.GetLogger().Warn("booking references unknown doctor",
					zap.String("bookingId", b.ID),
					zap.String("doctorId", b.DoctorID))
				doctor = &models.Doctor{}
			}
			doctors[b.DoctorID] = doctor
		}
		enriched = append(enriched, models.BookingWithDoctor{
			Booking:              b,
			DoctorName:           doctor.Name,
			DoctorSpecialization: doctor.Specialization,
		})
	}
	return enriched, nil
}

// ChangeStatus lets the treating doctor close out an appointment.
func (s *DefaultService) ChangeStatus(ctx context.Context, doctorID string, req models.ChangeBookingStatusRequest) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return nil, newBookingNotFoundError()
	}
	if booking.DoctorID != doctorID {
		return nil, newBookingNotFoundError()
	}
	if req.Status != models.BookingCompleted {
		return nil, utils.NewValidationError("status must be %q", models.BookingCompleted)
	}
	switch booking.Status {
	case models.BookingCancelled:
		return nil, newAlreadyCancelledError()
	case models.BookingCompleted:
		return nil, newAlreadyCompletedError()
	}

	status := models.BookingCompleted
	fields := models.UpdateBookingFields{Status: &status}
	if err := s.Bookings.UpdateFields(booking.ID, fields); err != nil {
		return nil, err
	}
	fields.Apply(booking)
	return booking, nil
}

func (s *DefaultService) rollbackReservation(doctorID string, date time.Time, slot models.TimeSlot) {
	if err := s.Availability.Release(doctorID, date, slot); err != nil {
		utils.GetLogger().Error("failed to roll back slot reservation",
			zap.String("doctorId", doctorID),
			zap.Error(err))
	}
}

func parseBookingDate(raw string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		// The frontend date picker sends full timestamps in some flows.
		day, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, utils.NewValidationError("invalid booking date %q, expected YYYY-MM-DD", raw)
		}
	}
	return models.DayOf(day), nil
}
