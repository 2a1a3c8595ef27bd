package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService, appointments appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, appointments))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("reminder worker failed to start", zap.Error(err))
		}
	}()
}

// handleReminderTask sends the reminder push, skipping reminders that went
// stale because the appointment was cancelled, completed, or moved.
func handleReminderTask(
	notifSvc notification.NotificationService,
	appointments appointmentRepo.AppointmentRepository,
) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("malformed reminder payload: %w", err)
		}

		appt, err := appointments.GetByID(payload.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrNotFound) {
				return nil
			}
			return err
		}
		if appt.Status != models.StatusUpcoming || appt.Date != payload.Date || appt.Time != payload.Time {
			return nil
		}

		body := fmt.Sprintf("Reminder: your appointment with %s is at %s on %s",
			payload.ProviderName, payload.Time, payload.Date)
		if err := notifSvc.SendPatientPushNotification(ctx, payload.PatientID, "Appointment Reminder", body); err != nil {
			utils.GetLogger().Warn("failed to deliver reminder push",
				zap.String("appointmentID", payload.AppointmentID), zap.Error(err))
		}
		return nil
	}
}
