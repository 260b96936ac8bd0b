// File: database/repository/patient/patient_mongo.go
package patientRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/database"
	"medibook/models"
	"medibook/utils"
)

// PatientRepository is the persistent store for patient accounts.
type PatientRepository interface {
	Create(patient *models.Patient) error
	GetByID(id string) (*models.Patient, error)
	GetByEmail(email string) (*models.Patient, error)
	// AppendBooking records a non-owning back-reference to a booking.
	AppendBooking(id, bookingID string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a MongoDB-backed PatientRepository.
func NewMongoPatientRepo() PatientRepository {
	db := database.MongoClient.Database("medibook")
	return &mongoPatientRepo{coll: db.Collection("patients")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new patient document.
func (r *mongoPatientRepo) Create(patient *models.Patient) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, patient)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("a patient with this email already exists")
		}
		return utils.NewDependencyError("create patient", err)
	}
	return nil
}

// GetByID fetches a patient by ID.
func (r *mongoPatientRepo) GetByID(id string) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("patient not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("get patient", err)
	}
	return &patient, nil
}

// GetByEmail fetches a patient by email.
func (r *mongoPatientRepo) GetByEmail(email string) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("patient not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("get patient by email", err)
	}
	return &patient, nil
}

// AppendBooking adds a booking back-reference to the patient document.
func (r *mongoPatientRepo) AppendBooking(id, bookingID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"bookings": bookingID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.NewDependencyError(fmt.Sprintf("append booking to patient %s", id), err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("patient not found")
	}
	return nil
}

// EnsureIndexes creates the patient indexes.
func (r *mongoPatientRepo) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}
	return nil
}
