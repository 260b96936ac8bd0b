package models

import "time"

// UpdateBookingFields carries a partial booking update. Nil members are left
// untouched by Apply; repositories translate the same members into a $set
// document so the persisted shape never depends on field-presence guessing.
type UpdateBookingFields struct {
	Status             *string
	CancelledAt        *time.Time
	CancellationReason *string
}

// Apply merges the set members into the booking.
func (u UpdateBookingFields) Apply(b *Booking) {
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.CancelledAt != nil {
		t := *u.CancelledAt
		b.CancelledAt = &t
	}
	if u.CancellationReason != nil {
		b.CancellationReason = *u.CancellationReason
	}
}

// UpdateAvailabilityFields carries a partial availability update.
type UpdateAvailabilityFields struct {
	IsAvailable *bool
	Schedules   []DaySchedule // nil means untouched; non-nil replaces wholesale
}

// Apply merges the set members into the availability.
func (u UpdateAvailabilityFields) Apply(a *Availability) {
	if u.IsAvailable != nil {
		a.IsAvailable = *u.IsAvailable
	}
	if u.Schedules != nil {
		a.Schedules = u.Schedules
	}
}
