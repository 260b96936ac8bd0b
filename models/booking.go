package models

import "time"

// Booking statuses. Completed and Cancelled are terminal.
const (
	BookingScheduled = "Scheduled"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

// Booking represents a confirmed appointment record.
type Booking struct {
	ID                 string     `bson:"id" json:"id"`
	DoctorID           string     `bson:"doctorId" json:"doctorId"`
	PatientID          string     `bson:"patientId" json:"patientId"`
	PatientName        string     `bson:"patientName" json:"patientName"`
	PatientPhone       string     `bson:"patientPhone" json:"patientPhone"`
	PatientSex         string     `bson:"patientSex" json:"patientSex"`
	PatientAge         string     `bson:"patientAge" json:"patientAge"`
	PatientAddress     string     `bson:"patientAddress" json:"patientAddress"`
	BookingDate        time.Time  `bson:"bookingDate" json:"bookingDate"`
	BookingTimeSlot    string     `bson:"bookingTimeSlot" json:"bookingTimeSlot"` // e.g. "09:00 AM - 10:00 AM"
	Status             string     `bson:"status" json:"status"`
	SerialNumber       string     `bson:"serialNumber" json:"serialNumber"` // <YYYYMMDD>-<NNN>
	CancelledAt        *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
}

// Terminal reports whether the booking can no longer change state.
func (b *Booking) Terminal() bool {
	return b.Status == BookingCompleted || b.Status == BookingCancelled
}

// PendingBooking is the candidate payload held by the OTP broker between
// initiate and confirm. It never touches persistent storage.
type PendingBooking struct {
	PatientID       string    `json:"patientId"`
	DoctorID        string    `json:"doctorId"`
	PatientName     string    `json:"patientName"`
	PatientPhone    string    `json:"patientPhone"`
	PatientSex      string    `json:"patientSex"`
	PatientAge      string    `json:"patientAge"`
	PatientAddress  string    `json:"patientAddress"`
	BookingDate     time.Time `json:"bookingDate"`
	BookingTimeSlot string    `json:"bookingTimeSlot"`
}

// BookingWithDoctor is a booking enriched with the referenced doctor's
// name and specialization for the patient's list view.
type BookingWithDoctor struct {
	Booking
	DoctorName           string `json:"doctorName"`
	DoctorSpecialization string `json:"doctorSpecialization"`
}

// DayOf normalizes a timestamp to UTC midnight. Bookings and schedules are
// compared at day granularity throughout.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
