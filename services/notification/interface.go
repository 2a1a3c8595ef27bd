package notification

import (
	"context"
	"fmt"

	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes. Delivery is
// fire-and-forget from the booking engine's point of view: errors are logged
// by the caller, never surfaced to the booking caller.
type NotificationService interface {
	SendPatientPushNotification(ctx context.Context, patientID, title, body string) error
	SendProviderPushNotification(ctx context.Context, providerID, title, body string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Patients  patientRepo.PatientRepository
	Providers providerRepo.ProviderRepository
}

// SendPatientPushNotification looks up a patient's FCM token and sends a push.
func (s *DefaultNotificationService) SendPatientPushNotification(
	ctx context.Context,
	patientID, title, body string,
) error {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPushNotification: could not find patient %s: %w", patientID, err)
	}
	if patient.FCMToken == "" {
		return fmt.Errorf("SendPatientPushNotification: patient %s has no FCM token", patientID)
	}
	return s.send(ctx, patient.FCMToken, title, body)
}

// SendProviderPushNotification looks up a provider's FCM token and sends a push.
func (s *DefaultNotificationService) SendProviderPushNotification(
	ctx context.Context,
	providerID, title, body string,
) error {
	provider, err := s.Providers.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("SendProviderPushNotification: could not find provider %s: %w", providerID, err)
	}
	if provider.FCMToken == "" {
		return fmt.Errorf("SendProviderPushNotification: provider %s has no FCM token", providerID)
	}
	return s.send(ctx, provider.FCMToken, title, body)
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
