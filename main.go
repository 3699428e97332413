// File: clinio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinio/config"
	"clinio/cron"
	"clinio/database"
	appointmentRepoPkg "clinio/database/repository/appointment"
	dentistRepoPkg "clinio/database/repository/dentist"
	recordRepoPkg "clinio/database/repository/record"
	userRepoPkg "clinio/database/repository/user"
	"clinio/handlers"
	"clinio/routes"
	"clinio/services/booking"
	"clinio/services/dentist"
	"clinio/services/record"
	"clinio/services/scheduling"
	"clinio/services/user"
	"clinio/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	conn, err := database.Connect(config.AppConfig.DatabaseURL, config.AppConfig.DatabaseName)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	utils.InitRedis()

	clinicLoc, err := time.LoadLocation(config.AppConfig.ClinicTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid clinic timezone %q: %v", config.AppConfig.ClinicTimezone, err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(conn)
	dentistRepo := dentistRepoPkg.NewMongoDentistRepo(conn)
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo(conn)
	recordRepo := recordRepoPkg.NewMongoRecordRepo(conn)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	dentistService := &dentist.DefaultDentistService{Repo: dentistRepo}
	schedulingService := &scheduling.DefaultSchedulingService{
		Dentists:     dentistRepo,
		Appointments: appointmentRepo,
		Location:     clinicLoc,
		Granularity:  config.AppConfig.SlotGranularityMin,
	}
	bookingService := &booking.DefaultBookingService{
		Appointments: appointmentRepo,
		Dentists:     dentistRepo,
		Location:     clinicLoc,
	}
	recordService := &record.DefaultRecordService{
		Repo:  recordRepo,
		Users: userRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		User:         &handlers.UserHandler{UserService: userService},
		Dentist:      &handlers.DentistHandler{DentistService: dentistService},
		Availability: &handlers.AvailabilityHandler{SchedulingService: schedulingService},
		Appointment:  &handlers.AppointmentHandler{BookingService: bookingService},
		Record:       &handlers.RecordHandler{RecordService: recordService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background maintenance.
	cron.InitSweepWorker(appointmentRepo)

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
	if err := conn.Close(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to close MongoDB connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
