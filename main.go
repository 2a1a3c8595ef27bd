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
	appointmentRepoPkg "medibook/database/repository/appointment"
	patientRepoPkg "medibook/database/repository/patient"
	providerRepoPkg "medibook/database/repository/provider"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/appointment"
	"medibook/services/notification"
	"medibook/services/provider"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Patients:  patientRepo,
		Providers: provRepo,
	}
	providerService := &provider.DefaultProviderService{
		Repo:  provRepo,
		Cache: utils.GetCacheClient(),
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Providers:    provRepo,
		Patients:     patientRepo,
		Appointments: apptRepo,
		Notifier:     notificationService,
		Reminders:    tasks.NewAsynqReminderScheduler(),
		DurationMin:  config.AppConfig.AppointmentDurationMinutes,
		ReminderLead: config.AppConfig.ReminderLeadMinutes,
	}

	cron.InitReminderWorker(notificationService, apptRepo)

	hb := &handlers.HandlerBundle{
		Appointment: handlers.NewAppointmentHandler(appointmentService),
		Provider:    handlers.NewProviderHandler(providerService),
	}
	routes.RegisterRoutes(router, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
