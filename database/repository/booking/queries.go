// File: database/repository/booking/queries.go
package bookingRepo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
	"medibook/utils"
)

// FindScheduled looks for an active booking matching (patient, doctor, day,
// slot). The date comparison is a day-granular range, not an exact timestamp.
func (r *mongoBookingRepo) FindScheduled(patientID, doctorID string, day time.Time, slot string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	startOfDay := models.DayOf(day)
	endOfDay := startOfDay.Add(24*time.Hour - time.Millisecond)

	filter := bson.M{
		"patientId":       patientID,
		"doctorId":        doctorID,
		"bookingDate":     bson.M{"$gte": startOfDay, "$lte": endOfDay},
		"bookingTimeSlot": slot,
		"status":          models.BookingScheduled,
	}

	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, utils.NewDependencyError("find scheduled booking", err)
	}
	return &booking, nil
}

// NextSerial increments the per-day booking counter and returns the new
// 1-based value. The counter is keyed by the YYYYMMDD day stamp and updated
// with an upserted $inc, so concurrent confirms can never draw the same
// sequence number.
func (r *mongoBookingRepo) NextSerial(day time.Time) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	key := models.DayOf(day).Format("20060102")
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&counter)
	if err != nil {
		return 0, utils.NewDependencyError("next booking serial", err)
	}
	return counter.Seq, nil
}

func optionsFindNewestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
