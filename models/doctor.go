package models

import "time"

// SlotStatus is a catalog slot offered by a doctor on a given day,
// together with its booked flag.
type SlotStatus struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	IsBooked  bool   `bson:"isBooked" json:"isBooked"`
}

// DaySchedule holds the slots a doctor offers for one calendar day.
// Dates are normalized to UTC midnight; no two entries share a slot pair.
type DaySchedule struct {
	Date      time.Time    `bson:"date" json:"date"`
	TimeSlots []SlotStatus `bson:"timeSlots" json:"timeSlots"`
}

// Availability is a doctor's calendar: an overall availability flag plus at
// most one DaySchedule per calendar day.
type Availability struct {
	IsAvailable bool          `bson:"isAvailable" json:"isAvailable"`
	Schedules   []DaySchedule `bson:"schedules" json:"schedules"`
}

// Doctor represents a doctor account.
type Doctor struct {
	ID              string       `bson:"id" json:"id"`
	Name            string       `bson:"name" json:"name"`
	Email           string       `bson:"email" json:"email"`
	PasswordHash    string       `bson:"passwordHash" json:"-"`
	Gender          string       `bson:"gender,omitempty" json:"gender,omitempty"`
	Specialization  string       `bson:"specialization" json:"specialization"`
	Qualification   string       `bson:"qualification,omitempty" json:"qualification,omitempty"`
	Hospital        string       `bson:"hospital,omitempty" json:"hospital,omitempty"`
	Fees            float64      `bson:"fees,omitempty" json:"fees,omitempty"`
	ExperienceYears int          `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	Availability    Availability `bson:"availability" json:"availability"`
	Bookings        []string     `bson:"bookings,omitempty" json:"bookings,omitempty"` // non-owning back-references
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile strips credentials and calendar internals for the listing
// endpoint consumed by the booking UI.
func (d *Doctor) PublicProfile() DoctorPublic {
	return DoctorPublic{
		ID:              d.ID,
		Name:            d.Name,
		Gender:          d.Gender,
		Specialization:  d.Specialization,
		Qualification:   d.Qualification,
		Hospital:        d.Hospital,
		Fees:            d.Fees,
		ExperienceYears: d.ExperienceYears,
		IsAvailable:     d.Availability.IsAvailable,
		Schedules:       d.Availability.Schedules,
	}
}

// DoctorPublic is the patient-facing view of a doctor.
type DoctorPublic struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Gender          string        `json:"gender,omitempty"`
	Specialization  string        `json:"specialization"`
	Qualification   string        `json:"qualification,omitempty"`
	Hospital        string        `json:"hospital,omitempty"`
	Fees            float64       `json:"fees,omitempty"`
	ExperienceYears int           `json:"experienceYears,omitempty"`
	IsAvailable     bool          `json:"isAvailable"`
	Schedules       []DaySchedule `json:"schedules"`
}
