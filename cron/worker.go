package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"medibook/config"
	bookingRepo "medibook/database/repository/booking"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/tasks"
	"medibook/utils"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(bookings bookingRepo.BookingRepository, patients patientRepo.PatientRepository, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(bookings, patients, notifSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(bookings bookingRepo.BookingRepository, patients patientRepo.PatientRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}

		booking, err := bookings.GetByID(p.BookingID)
		if err != nil {
			utils.GetLogger().Warn("reminder for missing booking",
				zap.String("bookingId", p.BookingID))
			return nil
		}
		// A cancelled or completed appointment needs no reminder.
		if booking.Status != models.BookingScheduled {
			return nil
		}

		patient, err := patients.GetByID(booking.PatientID)
		if err != nil {
			utils.GetLogger().Warn("reminder for missing patient",
				zap.String("bookingId", p.BookingID),
				zap.String("patientId", booking.PatientID))
			return nil
		}

		if err := notifSvc.SendBookingReminder(ctx, patient, booking); err != nil {
			utils.GetLogger().Error("failed to send reminder email", zap.Error(err))
			return err
		}
		return nil
	}
}
