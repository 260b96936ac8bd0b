package availability

import (
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
)

// Service manages a doctor's availability calendar. All mutations for one
// doctor are serialized behind a per-doctor lock.
type Service interface {
	// Update applies a batch availability update: the optional overall flag
	// plus zero or more {date, timeSlots} entries. The whole batch is
	// validated before any slot is added; on the first violation nothing
	// changes.
	Update(doctorID string, req models.AvailabilityUpdateRequest) (*models.Availability, error)
	// RemoveSlot deletes one free slot; the day's schedule goes with it when
	// it was the last slot.
	RemoveSlot(doctorID string, date time.Time, slot models.TimeSlot) error
	// RemoveDay deletes a whole day's schedule unless any slot is booked.
	RemoveDay(doctorID string, date time.Time) error
	// Reserve marks a slot booked on behalf of the booking workflow. It fails
	// with a ConflictError when the slot is not offered or already booked.
	Reserve(doctorID string, date time.Time, slot models.TimeSlot) error
	// Release marks a previously reserved slot free again.
	Release(doctorID string, date time.Time, slot models.TimeSlot) error
}

// DefaultService is the production implementation backed by the doctor
// repository; the calendar lives inside the doctor document.
type DefaultService struct {
	Repo  doctorRepo.DoctorRepository
	locks *doctorLocks
}

// NewService constructs the availability service.
func NewService(repo doctorRepo.DoctorRepository) *DefaultService {
	return &DefaultService{Repo: repo, locks: newDoctorLocks()}
}
