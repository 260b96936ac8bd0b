// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"medibook/database"
	"medibook/models"
)

// BookingRepository is the persistent booking ledger.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByIDs(ids []string) ([]models.Booking, error)
	GetByPatient(patientID string) ([]models.Booking, error)
	// FindScheduled looks up an active booking for the same patient, doctor,
	// calendar day and time slot. Returns (nil, nil) when none exists.
	FindScheduled(patientID, doctorID string, day time.Time, slot string) (*models.Booking, error)
	UpdateFields(id string, fields models.UpdateBookingFields) error
	// NextSerial atomically increments and returns the 1-based booking
	// sequence for the given calendar day.
	NextSerial(day time.Time) (int, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("medibook")
	return &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		counters: db.Collection("booking_counters"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
