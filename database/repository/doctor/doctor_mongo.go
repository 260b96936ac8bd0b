// File: database/repository/doctor/doctor_mongo.go
package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
	"medibook/utils"
)

// Create inserts a new doctor document.
func (r *mongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("a doctor with this email already exists")
		}
		return utils.NewDependencyError("create doctor", err)
	}
	return nil
}

// GetByID fetches a doctor by ID.
func (r *mongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("doctor not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("get doctor", err)
	}
	return &doctor, nil
}

// GetByEmail fetches a doctor by email.
func (r *mongoDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("doctor not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("get doctor by email", err)
	}
	return &doctor, nil
}

// GetAll returns every doctor, sorted by name for the public listing.
func (r *mongoDoctorRepo) GetAll() ([]models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewDependencyError("list doctors", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, utils.NewDependencyError("decode doctors", err)
	}
	return doctors, nil
}

// ReplaceAvailability writes the availability subdocument wholesale.
func (r *mongoDoctorRepo) ReplaceAvailability(id string, availability models.Availability) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"availability": availability,
		"updatedAt":    time.Now().UTC(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.NewDependencyError(fmt.Sprintf("update availability for doctor %s", id), err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("doctor not found")
	}
	return nil
}

// AppendBooking adds a booking back-reference to the doctor document.
func (r *mongoDoctorRepo) AppendBooking(id, bookingID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"bookings": bookingID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.NewDependencyError(fmt.Sprintf("append booking to doctor %s", id), err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("doctor not found")
	}
	return nil
}

// EnsureIndexes creates the doctor indexes.
func (r *mongoDoctorRepo) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}
	return nil
}
