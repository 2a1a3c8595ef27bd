package appointment

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/services/notification"
)

// Actor is the resolved identity of the caller, handed to the engine by the
// auth middleware. The engine never inspects raw request credentials.
type Actor struct {
	ID   string
	Role string
}

// Caller roles.
const (
	RolePatient  = "patient"
	RoleProvider = "provider"
)

// CreateRequest carries the inputs for a new booking.
type CreateRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	PatientID  string `json:"-"`
	Date       string `json:"date" binding:"required"` // "2006-01-02"
	Time       string `json:"time" binding:"required"` // "2:30 PM" or "14:30"
	Reason     string `json:"reason" binding:"required"`
}

// ReminderScheduler enqueues a reminder push ahead of an appointment.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AppointmentService is the booking engine. Every operation takes the call
// time explicitly so future-date checks stay deterministic under test.
type AppointmentService interface {
	Create(ctx context.Context, req CreateRequest, now time.Time) (*models.Appointment, error)
	Update(ctx context.Context, id string, actor Actor, patch models.AppointmentUpdateRequest, now time.Time) (*models.Appointment, error)
	ListForActor(ctx context.Context, actor Actor) (*models.AppointmentBuckets, error)
	ListPatientHistory(ctx context.Context, providerID, patientID string) (*models.AppointmentBuckets, error)
	ListAllForPatient(ctx context.Context, patientID string) (*models.AppointmentBuckets, error)
}

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Providers    providerRepo.ProviderRepository
	Patients     patientRepo.PatientRepository
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.NotificationService
	Reminders    ReminderScheduler // optional
	DurationMin  int               // defaults to 60
	ReminderLead int               // minutes before the appointment, defaults to 60

	locks providerLocks
}

func (s *DefaultAppointmentService) duration() int {
	if s.DurationMin <= 0 {
		return 60
	}
	return s.DurationMin
}

func (s *DefaultAppointmentService) reminderLead() time.Duration {
	if s.ReminderLead <= 0 {
		return time.Hour
	}
	return time.Duration(s.ReminderLead) * time.Minute
}
