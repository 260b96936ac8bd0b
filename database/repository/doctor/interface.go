// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"medibook/database"
	"medibook/models"
)

// DoctorRepository is the persistent store for doctor accounts, including the
// availability calendar embedded in the doctor document.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	GetByID(id string) (*models.Doctor, error)
	GetByEmail(email string) (*models.Doctor, error)
	GetAll() ([]models.Doctor, error)
	// ReplaceAvailability writes the doctor's availability wholesale. Callers
	// serialize read-modify-write cycles per doctor.
	ReplaceAvailability(id string, availability models.Availability) error
	// AppendBooking records a non-owning back-reference to a booking.
	AppendBooking(id, bookingID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a MongoDB-backed DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	db := database.MongoClient.Database("medibook")
	return &mongoDoctorRepo{coll: db.Collection("doctors")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
