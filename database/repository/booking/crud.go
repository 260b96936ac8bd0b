// File: database/repository/booking/crud.go
package bookingRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"medibook/models"
	"medibook/utils"
)

// Create inserts a new booking document. A duplicate-key rejection from the
// active-booking index surfaces as a ConflictError so a second writer racing
// for the same slot loses atomically at the storage layer.
func (r *mongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("this date or time slot is already booked, please choose another date or time slot")
		}
		return utils.NewDependencyError("create booking", err)
	}
	return nil
}

// GetByID fetches a booking by its ID.
func (r *mongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("booking not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("get booking", err)
	}
	return &booking, nil
}

// GetByIDs fetches the bookings for a list of IDs, preserving no particular order.
func (r *mongoBookingRepo) GetByIDs(ids []string) ([]models.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, utils.NewDependencyError("list bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.NewDependencyError("decode bookings", err)
	}
	return bookings, nil
}

// GetByPatient fetches all bookings owned by a patient, newest first.
func (r *mongoBookingRepo) GetByPatient(patientID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := optionsFindNewestFirst()
	cursor, err := r.coll.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, utils.NewDependencyError("list patient bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.NewDependencyError("decode patient bookings", err)
	}
	return bookings, nil
}

// UpdateFields applies a partial update, translating the set members of
// UpdateBookingFields into a $set document.
func (r *mongoBookingRepo) UpdateFields(id string, fields models.UpdateBookingFields) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{}
	if fields.Status != nil {
		set["status"] = *fields.Status
	}
	if fields.CancelledAt != nil {
		set["cancelledAt"] = *fields.CancelledAt
	}
	if fields.CancellationReason != nil {
		set["cancellationReason"] = *fields.CancellationReason
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return utils.NewDependencyError(fmt.Sprintf("update booking %s", id), err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("booking not found")
	}
	return nil
}
