package models

// InitiateBookingRequest is the body of POST /api/booking/initiate.
type InitiateBookingRequest struct {
	DoctorID        string `json:"doctorId" binding:"required"`
	PatientName     string `json:"patientName" binding:"required"`
	PatientPhone    string `json:"patientPhone" binding:"required"`
	PatientSex      string `json:"patientSex" binding:"required"`
	PatientAge      string `json:"patientAge" binding:"required"`
	PatientAddress  string `json:"patientAddress" binding:"required"`
	BookingDate     string `json:"bookingDate" binding:"required"`     // "2006-01-02"
	BookingTimeSlot string `json:"bookingTimeSlot" binding:"required"` // "<start> - <end>"
}

// ConfirmBookingRequest is the body of POST /api/booking/confirm.
type ConfirmBookingRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// CancelBookingRequest is the body of PUT /api/booking/cancel/:id.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ChangeBookingStatusRequest is the doctor-side status change body.
type ChangeBookingStatusRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// ScheduleInput is one date entry of an availability update batch.
type ScheduleInput struct {
	Date      string     `json:"date" binding:"required"` // "2006-01-02"
	TimeSlots []TimeSlot `json:"timeSlots" binding:"required"`
}

// AvailabilityUpdateRequest is the body of PUT /api/doctor/availability.
type AvailabilityUpdateRequest struct {
	IsAvailable *bool           `json:"isAvailable"`
	Schedules   []ScheduleInput `json:"schedules"`
}

// AvailabilityDeleteRequest is the body of DELETE /api/doctor/availability.
// A nil Slot removes the whole day.
type AvailabilityDeleteRequest struct {
	Date string    `json:"date" binding:"required"`
	Slot *TimeSlot `json:"slot"`
}
