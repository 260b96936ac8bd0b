package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"medibook/models"
	"medibook/utils"
)

const TypeBookingReminder = "booking:reminder"

// reminderLead is how far before the appointment the reminder fires.
const reminderLead = 24 * time.Hour

// ReminderPayload is the asynq task payload for appointment reminders.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
}

// NewReminderTask builds the reminder task scheduled for fireAt.
func NewReminderTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ReminderPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// Scheduler enqueues reminder tasks on the booking queue.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler constructs a scheduler on the given Redis queue.
func NewScheduler(redisOpt asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpt)}
}

// Schedule enqueues a reminder 24 hours before the appointment slot opens.
// Appointments closer than the lead time get no reminder.
func (s *Scheduler) Schedule(ctx context.Context, booking *models.Booking) error {
	fireAt := appointmentStart(booking).Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		utils.GetLogger().Debug("appointment too near, skipping reminder",
			zap.String("bookingId", booking.ID))
		return nil
	}

	task, opts, err := NewReminderTask(booking.ID, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return err
	}
	utils.GetLogger().Info("reminder scheduled",
		zap.String("bookingId", booking.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// appointmentStart resolves the absolute start of the booked slot, falling
// back to the bare date when the slot label does not parse.
func appointmentStart(booking *models.Booking) time.Time {
	day := models.DayOf(booking.BookingDate)
	slot, ok := models.ParseSlotLabel(booking.BookingTimeSlot)
	if !ok {
		return day
	}
	start, err := time.Parse("03:04 PM", slot.StartTime)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
}
