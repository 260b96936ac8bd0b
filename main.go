// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	bookingRepoPkg "medibook/database/repository/booking"
	doctorRepoPkg "medibook/database/repository/doctor"
	patientRepoPkg "medibook/database/repository/patient"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/doctor"
	"medibook/services/notification"
	"medibook/services/patient"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitOTPCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	if err := bookingRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := doctorRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure doctor indexes: %v", err)
	}
	if err := patientRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure patient indexes: %v", err)
	}

	// services.
	patientService := &patient.DefaultService{
		Repo: patientRepo,
	}
	doctorService := &doctor.DefaultService{
		Repo: doctorRepo,
	}
	availabilityService := availability.NewService(doctorRepo)

	var sender notification.EmailSender
	if sg := notification.NewSendGridSender(notification.SendGridConfig{
		APIKey:    config.AppConfig.SendGridAPIKey,
		FromEmail: config.AppConfig.EmailFrom,
		FromName:  config.AppConfig.EmailFromName,
	}); sg != nil {
		sender = sg
	} else {
		logger.Sugar().Warn("main: no SendGrid API key configured, emails will be logged instead of sent")
		sender = &notification.StubEmailSender{}
	}
	notificationService := &notification.DefaultNotificationService{
		Sender: sender,
	}

	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	reminderScheduler := tasks.NewScheduler(queueOpt)
	cron.InitReminderWorker(bookingRepo, patientRepo, notificationService)

	bookingService := &booking.DefaultService{
		Bookings:            bookingRepo,
		Doctors:             doctorRepo,
		Patients:            patientRepo,
		Availability:        availabilityService,
		OTP:                 booking.NewOTPBroker(utils.GetOTPCacheClient(), booking.OTPTTL),
		Notifier:            notificationService,
		Reminders:           reminderScheduler,
		ReleaseSlotOnCancel: config.AppConfig.ReleaseSlotOnCancel,
	}

	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		PatientRepo: patientRepo,
		DoctorRepo:  doctorRepo,

		// Patient endpoints.
		RegisterPatient:   patientHandler.RegisterPatient,
		LoginPatient:      patientHandler.LoginPatient,
		GetPatientProfile: patientHandler.GetPatientProfile,

		// Doctor endpoints.
		RegisterDoctor:   doctorHandler.RegisterDoctor,
		LoginDoctor:      doctorHandler.LoginDoctor,
		GetDoctorProfile: doctorHandler.GetDoctorProfile,
		ListDoctors:      doctorHandler.ListDoctors,

		// Booking endpoints.
		InitiateBooking:     bookingHandler.InitiateBooking,
		ConfirmBooking:      bookingHandler.ConfirmBooking,
		CancelBooking:       bookingHandler.CancelBooking,
		ListBookings:        bookingHandler.ListBookings,
		ChangeBookingStatus: bookingHandler.ChangeBookingStatus,

		// Availability endpoints.
		UpdateAvailability: availabilityHandler.UpdateAvailability,
		DeleteAvailability: availabilityHandler.DeleteAvailability,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
